package scene

import (
	"sort"

	"github.com/san-kum/ambient/internal/fb"
)

// Palette defines the 256-colour scheme shared by the scenes.
type Palette struct {
	Name string
	// Ambient ramps the noise field from dark to bright.
	Ambient [5]fb.Color
	// Influence replaces Ambient where the cursor has influence.
	Influence [5]fb.Color
	BgDim     fb.Color
	BgBright  fb.Color
	Node      fb.Color
	Dim       fb.Color
	Accent    fb.Color
	Status    fb.Color
}

// Available palettes
var (
	PaletteOcean = Palette{
		Name:      "ocean",
		Ambient:   [5]fb.Color{17, 18, 19, 20, 21},    // Deep blues
		Influence: [5]fb.Color{52, 88, 124, 160, 196}, // Reds
		BgDim:     17,
		BgBright:  20,
		Node:      255,
		Dim:       245,
		Accent:    208,
		Status:    250,
	}

	PaletteEmber = Palette{
		Name:      "ember",
		Ambient:   [5]fb.Color{52, 88, 124, 160, 196},
		Influence: [5]fb.Color{130, 166, 202, 214, 220}, // Orange to gold
		BgDim:     52,
		BgBright:  88,
		Node:      230,
		Dim:       180,
		Accent:    220,
		Status:    223,
	}

	PaletteRetro = Palette{
		Name:      "retro",
		Ambient:   [5]fb.Color{22, 28, 34, 40, 46}, // Green phosphor
		Influence: [5]fb.Color{100, 142, 184, 190, 226},
		BgDim:     22,
		BgBright:  28,
		Node:      46,
		Dim:       34,
		Accent:    226,
		Status:    40,
	}

	PaletteSunset = Palette{
		Name:      "sunset",
		Ambient:   [5]fb.Color{53, 89, 125, 161, 197},
		Influence: [5]fb.Color{172, 208, 214, 220, 228},
		BgDim:     53,
		BgBright:  89,
		Node:      224,
		Dim:       181,
		Accent:    215,
		Status:    218,
	}

	PaletteMono = Palette{
		Name:      "mono",
		Ambient:   [5]fb.Color{234, 236, 238, 240, 242},
		Influence: [5]fb.Color{244, 246, 248, 250, 252},
		BgDim:     236,
		BgBright:  240,
		Node:      255,
		Dim:       244,
		Accent:    231,
		Status:    248,
	}

	// All available palettes
	Palettes = []Palette{
		PaletteOcean,
		PaletteEmber,
		PaletteRetro,
		PaletteSunset,
		PaletteMono,
	}
)

// LookupPalette finds a palette by name.
func LookupPalette(name string) (Palette, bool) {
	for _, p := range Palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// GetPalette returns a palette by name, falling back to ocean.
func GetPalette(name string) Palette {
	if p, ok := LookupPalette(name); ok {
		return p
	}
	return PaletteOcean
}

// PaletteNames returns the available palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// ramp picks the colour for a normalised level in [0, 1].
func ramp(colors [5]fb.Color, level float64) fb.Color {
	i := int(level * float64(len(colors)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(colors) {
		i = len(colors) - 1
	}
	return colors[i]
}
