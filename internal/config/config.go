// Package config loads the game configuration from YAML layered over the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  Window  `yaml:"window"`
	Catalog Catalog `yaml:"catalog"`
	Camera  Camera  `yaml:"camera"`
	Quiz    Quiz    `yaml:"quiz"`
	Sky     Sky     `yaml:"sky"`
	Audio   Audio   `yaml:"audio"`
	Save    Save    `yaml:"save"`
	Debug   bool    `yaml:"debug"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Catalog paths override the embedded data when set.
type Catalog struct {
	Stars          string `yaml:"stars"`
	Constellations string `yaml:"constellations"`
}

type Camera struct {
	FovDegrees float64 `yaml:"fov_degrees"`
	Follow     float64 `yaml:"follow"`
	Settle     float64 `yaml:"settle"`
	DragGain   float64 `yaml:"drag_gain"`
}

type Quiz struct {
	Home string `yaml:"home"`
	Seed uint64 `yaml:"seed"` // 0 picks a random seed
}

type Sky struct {
	MagnitudeLimit float64 `yaml:"magnitude_limit"`
}

type Audio struct {
	Music  string  `yaml:"music"`
	Volume float64 `yaml:"volume"`
}

type Save struct {
	AppName string `yaml:"app_name"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "Astraea"},
		Camera: Camera{FovDegrees: 45, Follow: 0.1, Settle: 0.01, DragGain: 6},
		Quiz:   Quiz{Home: "Ursa Minor"},
		Sky:    Sky{MagnitudeLimit: 6.5},
		Audio:  Audio{Volume: 0.5},
		Save:   Save{AppName: "astraea"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 320 || c.Window.Height < 240 {
		errs = append(errs, fmt.Errorf("window %dx%d is below 320x240", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FovDegrees <= 10 || c.Camera.FovDegrees >= 170 {
		errs = append(errs, fmt.Errorf("camera.fov_degrees %v not in (10, 170)", c.Camera.FovDegrees))
	}
	if c.Camera.Follow <= 0 || c.Camera.Follow > 1 {
		errs = append(errs, fmt.Errorf("camera.follow %v not in (0, 1]", c.Camera.Follow))
	}
	if c.Camera.Settle <= 0 {
		errs = append(errs, fmt.Errorf("camera.settle must be positive"))
	}
	if c.Camera.DragGain <= 0 {
		errs = append(errs, fmt.Errorf("camera.drag_gain must be positive"))
	}
	if c.Quiz.Home == "" {
		errs = append(errs, errors.New("quiz.home is empty"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v not in [0, 1]", c.Audio.Volume))
	}
	if c.Save.AppName == "" {
		errs = append(errs, errors.New("save.app_name is empty"))
	}
	return errors.Join(errs...)
}
