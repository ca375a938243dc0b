// Package noise provides deterministic 3D gradient noise for ambient
// terminal backgrounds.
//
//   - [Field]: seeded permutation table with [Field.Sample3D] and
//     [Field.FractalSum]
//   - [Fade], [Lerp]: the interpolation primitives used by the lattice blend
//
// # Example
//
//	f := noise.New(42)
//	v := f.FractalSum(x*0.08, y*0.16, t*0.15, 3, 0.5)
//
// # Thread Safety
//
// Sampling only reads the permutation table and is safe for concurrent use.
// [Field.Seed] replaces the table and must not race with sampling.
package noise
