package noise

import "math"

// TableSize is the length of the permutation table: 256 shuffled values
// repeated once so corner hashes never need wrapping.
const TableSize = 512

// LCG constants used by the seeded shuffle.
const (
	lcgMul  = 1103515245
	lcgInc  = 12345
	lcgMask = 0x7fffffff
)

// Edge-midpoint gradient directions of a cube.
var gradients = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Field is a 3D gradient noise source backed by a seeded permutation table.
type Field struct {
	perm [TableSize]uint8
	seed int64
}

// New returns a field seeded with seed.
func New(seed int64) *Field {
	f := &Field{}
	f.Seed(seed)
	return f
}

// Seed rebuilds the permutation table from n. The same seed always yields
// the same table; the previous table is replaced in one assignment.
func (f *Field) Seed(n int64) {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	s := uint64(n)
	for i := 255; i > 0; i-- {
		s = (s*lcgMul + lcgInc) & lcgMask
		j := s % uint64(i+1)
		p[i], p[j] = p[j], p[i]
	}

	var table [TableSize]uint8
	for i := range table {
		table[i] = p[i&255]
	}
	f.perm = table
	f.seed = n
}

// SeedValue returns the seed the current table was built from.
func (f *Field) SeedValue() int64 { return f.seed }

// Table returns a copy of the permutation table.
func (f *Field) Table() [TableSize]uint8 { return f.perm }

// Sample3D returns the noise value at (x, y, z) in [-1, 1].
func (f *Field) Sample3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)

	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u, v, w := Fade(x), Fade(y), Fade(z)

	p := &f.perm
	a := int(p[X]) + Y
	aa := int(p[a]) + Z
	ab := int(p[a+1]) + Z
	b := int(p[X+1]) + Y
	ba := int(p[b]) + Z
	bb := int(p[b+1]) + Z

	v0 := Lerp(
		Lerp(grad(p[aa], x, y, z), grad(p[ba], x-1, y, z), u),
		Lerp(grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z), u),
		v,
	)
	v1 := Lerp(
		Lerp(grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1), u),
		Lerp(grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1), u),
		v,
	)

	// Edge gradients have length sqrt(2), so the raw blend can overshoot 1
	// by a few percent near lattice diagonals.
	return clamp(Lerp(v0, v1, w))
}

// FractalSum layers octaves of Sample3D at doubling frequency and
// persistence-scaled amplitude, normalised by the total amplitude so the
// result stays in [-1, 1]. Fewer than one octave is treated as one.
func (f *Field) FractalSum(x, y, z float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += f.Sample3D(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxValue == 0 {
		return 0
	}
	return clamp(total / maxValue)
}

// Fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func grad(hash uint8, x, y, z float64) float64 {
	g := gradients[hash%12]
	return g[0]*x + g[1]*y + g[2]*z
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
