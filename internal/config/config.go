// Package config loads cubeterm settings from defaults, an optional YAML
// file and CUBETERM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeterm/internal/game"
	"github.com/SeamusWaldron/cubeterm/internal/screen"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CUBETERM_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all settings.
type Config struct {
	Screen    Screen    `yaml:"screen" envPrefix:"SCREEN_"`
	View      View      `yaml:"view" envPrefix:"VIEW_"`
	Animation Animation `yaml:"animation" envPrefix:"ANIMATION_"`
	Scramble  Scramble  `yaml:"scramble" envPrefix:"SCRAMBLE_"`
	DBPath    string    `yaml:"db_path" env:"DB"`
	Verbose   bool      `yaml:"verbose" env:"VERBOSE"`
}

// Screen sizes the character buffer and the projection.
// Zero offsets center the projection in the buffer.
type Screen struct {
	Width   int     `yaml:"width" env:"WIDTH"`
	Height  int     `yaml:"height" env:"HEIGHT"`
	Focal   float64 `yaml:"focal" env:"FOCAL"`
	Scale   float64 `yaml:"scale" env:"SCALE"`
	OffsetX int     `yaml:"offset_x" env:"OFFSET_X"`
	OffsetY int     `yaml:"offset_y" env:"OFFSET_Y"`
}

// View places the solid and sets the per key press rotation.
type View struct {
	Distance float64 `yaml:"distance" env:"DISTANCE"`
	Step     float64 `yaml:"step" env:"STEP"`
}

// Animation controls turn playback.
type Animation struct {
	Speed         string        `yaml:"speed" env:"SPEED"`
	Steps         int           `yaml:"steps" env:"STEPS"`
	FrameInterval time.Duration `yaml:"frame_interval" env:"FRAME_INTERVAL"`
}

// Scramble sets the scramble length.
type Scramble struct {
	Length int `yaml:"length" env:"LENGTH"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Screen: Screen{
			Width:  70,
			Height: 45,
			Focal:  6,
			Scale:  10,
		},
		View: View{
			Distance: game.DefaultDistance,
			Step:     game.ViewStep,
		},
		Animation: Animation{
			Speed:         game.SpeedNormal.String(),
			FrameInterval: time.Second / 60,
		},
		Scramble: Scramble{Length: 20},
	}
}

// DefaultDir returns ~/.cubeterm.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubeterm"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the configuration. An empty path reads the default file if
// it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer or the game loop cannot use.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.Focal <= 0 || c.Screen.Scale <= 0 {
		return fmt.Errorf("%w: focal %v scale %v", ErrInvalid, c.Screen.Focal, c.Screen.Scale)
	}
	// The farthest sticker corner sits sqrt(3) from the center and must
	// stay beyond the near plane in every orientation.
	if c.View.Distance <= math.Sqrt(3)+screen.DefaultNear {
		return fmt.Errorf("%w: view distance %v must put the solid in front of the camera", ErrInvalid, c.View.Distance)
	}
	if c.View.Step <= 0 || c.View.Step > math.Pi {
		return fmt.Errorf("%w: view step %v", ErrInvalid, c.View.Step)
	}
	if _, err := game.ParseSpeed(c.Animation.Speed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Animation.Steps < 0 {
		return fmt.Errorf("%w: animation steps %d", ErrInvalid, c.Animation.Steps)
	}
	if c.Animation.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval %v", ErrInvalid, c.Animation.FrameInterval)
	}
	if c.Scramble.Length <= 0 {
		return fmt.Errorf("%w: scramble length %d", ErrInvalid, c.Scramble.Length)
	}
	return nil
}

// Speed returns the animation speed preset, normal when unset or unknown.
func (c Config) Speed() game.Speed {
	speed, err := game.ParseSpeed(c.Animation.Speed)
	if err != nil {
		return game.SpeedNormal
	}
	return speed
}

// Steps returns the frames per turn: the explicit setting if any, else the
// speed preset.
func (c Config) Steps() int {
	if c.Animation.Steps > 0 {
		return c.Animation.Steps
	}
	return c.Speed().Steps()
}

// ResolveDBPath returns the configured database path or the default one.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cubeterm.db"), nil
}
