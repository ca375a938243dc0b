package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"field": {
		Scene: "field", FPS: 24, Dataset: DefaultDataset, Palette: "ember",
		Noise:     NoiseConfig{Scale: 0.08, TimeScale: 0.15, Octaves: 3, Persistence: 0.5, Contrast: 0.6, Brightness: 0.3},
		Cursor:    CursorConfig{Radius: 15, Strength: 1.0, Speed: 2},
		Animation: AnimationConfig{Idle: DefaultIdle, Tween: DefaultTween, Easing: DefaultEasing},
	},
	"calm": {
		Scene: "sphere", FPS: 12, Dataset: "knowledge", Palette: "mono",
		Noise:     NoiseConfig{Scale: 0.04, TimeScale: 0.05, Octaves: 2, Persistence: 0.4, Contrast: 0.4, Brightness: 0.2},
		Cursor:    CursorConfig{Radius: 24, Strength: 0.4, Speed: 1},
		Animation: AnimationConfig{Idle: 4 * time.Second, Tween: 3 * time.Second, Easing: "quad"},
	},
	"sphere": DefaultConfig(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
