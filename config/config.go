// seehuhn.de/go/vectorlab - layered parametric pattern rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads and writes the vectorlab settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Canvas holds the output size.
type Canvas struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Density int `yaml:"density"` // 1, 2 or 4
}

// Render holds the rendering and frame export settings.
type Render struct {
	Backend  string        `yaml:"backend"` // "raster" | "gg"
	Flatness float64       `yaml:"flatness"`
	FPS      int           `yaml:"fps"`
	Frames   int           `yaml:"frames"` // 0 means duration·fps
	Duration time.Duration `yaml:"duration"`
}

// Preview configures the live preview server.
type Preview struct {
	Addr string `yaml:"addr"`
}

// Library locates the preset library.
type Library struct {
	Path string `yaml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Config is the complete configuration of vectorlab.
type Config struct {
	Canvas  Canvas  `yaml:"canvas"`
	Render  Render  `yaml:"render"`
	Preview Preview `yaml:"preview"`
	Library Library `yaml:"library"`
	Log     Log     `yaml:"log"`
}

// The supported rendering backends.
const (
	BackendRaster = "raster"
	BackendGG     = "gg"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas: Canvas{Width: 800, Height: 800, Density: 1},
		Render: Render{
			Backend:  BackendRaster,
			Flatness: 0.25,
			FPS:      30,
			Duration: 5 * time.Second,
		},
		Preview: Preview{Addr: "127.0.0.1:8080"},
		Library: Library{Path: "vectorlab.db"},
		Log:     Log{Level: "info"},
	}
}

// Load reads the settings file at path on top of the defaults.  A
// missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width < 1 || c.Canvas.Width > 4000 || c.Canvas.Height < 1 || c.Canvas.Height > 4000 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d out of range", c.Canvas.Width, c.Canvas.Height))
	}
	switch c.Canvas.Density {
	case 1, 2, 4:
	default:
		errs = append(errs, fmt.Errorf("density %d not one of 1, 2, 4", c.Canvas.Density))
	}
	switch c.Render.Backend {
	case BackendRaster, BackendGG:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Render.Backend))
	}
	if c.Render.Flatness <= 0 {
		errs = append(errs, fmt.Errorf("flatness %g must be positive", c.Render.Flatness))
	}
	if c.Render.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Render.FPS))
	}
	if c.Render.Frames < 0 || c.Render.Duration < 0 {
		errs = append(errs, errors.New("negative frame count or duration"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// FrameCount returns the number of frames to export.
func (r Render) FrameCount() int {
	if r.Frames > 0 {
		return r.Frames
	}
	return max(1, int(r.Duration.Seconds()*float64(r.FPS)+0.5))
}

// LogLevel returns the configured level.  Unknown names give info.
func (c *Config) LogLevel() zerolog.Level {
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
