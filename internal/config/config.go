package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 20
	DefaultScene       = "sphere"
	DefaultDataset     = "animalia"
	DefaultPalette     = "ocean"
	DefaultScale       = 0.06
	DefaultTimeScale   = 0.1
	DefaultOctaves     = 2
	DefaultPersistence = 0.5
	DefaultContrast    = 0.6
	DefaultBrightness  = 0.3
	DefaultRadius      = 20.0
	DefaultStrength    = 0.6
	DefaultSpeed       = 2.0
	DefaultIdle        = 2 * time.Second
	DefaultTween       = 1500 * time.Millisecond
	DefaultEasing      = "cubic"

	MaxFPS = 120
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scene     string          `yaml:"scene"`
	FPS       int             `yaml:"fps"`
	Seed      int64           `yaml:"seed"`
	Dataset   string          `yaml:"dataset"`
	Palette   string          `yaml:"palette"`
	Noise     NoiseConfig     `yaml:"noise"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Animation AnimationConfig `yaml:"animation"`
}

type NoiseConfig struct {
	Scale       float64 `yaml:"scale"`
	TimeScale   float64 `yaml:"time_scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Contrast    float64 `yaml:"contrast"`
	Brightness  float64 `yaml:"brightness"`
}

// CursorConfig shapes the Gaussian influence around the pointer. Radius is
// roughly three standard deviations, in cells.
type CursorConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Speed    float64 `yaml:"speed"`
}

type AnimationConfig struct {
	Idle   time.Duration `yaml:"idle"`
	Tween  time.Duration `yaml:"tween"`
	Easing string        `yaml:"easing"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:   DefaultScene,
		FPS:     DefaultFPS,
		Dataset: DefaultDataset,
		Palette: DefaultPalette,
		Noise: NoiseConfig{
			Scale:       DefaultScale,
			TimeScale:   DefaultTimeScale,
			Octaves:     DefaultOctaves,
			Persistence: DefaultPersistence,
			Contrast:    DefaultContrast,
			Brightness:  DefaultBrightness,
		},
		Cursor: CursorConfig{
			Radius:   DefaultRadius,
			Strength: DefaultStrength,
			Speed:    DefaultSpeed,
		},
		Animation: AnimationConfig{
			Idle:   DefaultIdle,
			Tween:  DefaultTween,
			Easing: DefaultEasing,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports the first out-of-range value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Scene != "field" && c.Scene != "sphere":
		return fmt.Errorf("%w: scene %q (want field or sphere)", ErrInvalid, c.Scene)
	case c.FPS < 1 || c.FPS > MaxFPS:
		return fmt.Errorf("%w: fps %d (want 1-%d)", ErrInvalid, c.FPS, MaxFPS)
	case c.Noise.Scale <= 0:
		return fmt.Errorf("%w: noise.scale must be positive", ErrInvalid)
	case c.Noise.TimeScale < 0:
		return fmt.Errorf("%w: noise.time_scale must not be negative", ErrInvalid)
	case c.Noise.Octaves < 1 || c.Noise.Octaves > 8:
		return fmt.Errorf("%w: noise.octaves %d (want 1-8)", ErrInvalid, c.Noise.Octaves)
	case c.Noise.Persistence <= 0 || c.Noise.Persistence > 1:
		return fmt.Errorf("%w: noise.persistence %g (want (0,1])", ErrInvalid, c.Noise.Persistence)
	case c.Noise.Contrast < 0 || c.Noise.Contrast > 1:
		return fmt.Errorf("%w: noise.contrast %g (want [0,1])", ErrInvalid, c.Noise.Contrast)
	case c.Noise.Brightness < -1 || c.Noise.Brightness > 1:
		return fmt.Errorf("%w: noise.brightness %g (want [-1,1])", ErrInvalid, c.Noise.Brightness)
	case c.Cursor.Radius <= 0:
		return fmt.Errorf("%w: cursor.radius must be positive", ErrInvalid)
	case c.Cursor.Strength < 0:
		return fmt.Errorf("%w: cursor.strength must not be negative", ErrInvalid)
	case c.Animation.Idle <= 0 || c.Animation.Tween <= 0:
		return fmt.Errorf("%w: animation durations must be positive", ErrInvalid)
	}
	return nil
}

// FrameInterval is the target time between frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS < 1 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// SeedValue returns Seed, or a clock-derived seed when Seed is zero.
func (c *Config) SeedValue() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano() & 0x7fffffff
}
