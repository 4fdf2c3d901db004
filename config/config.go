// seehuhn.de/go/meshfield - scalar fields on meshes, rendered in software
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

// Package config loads scene settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/pdf/graphics"
)

// Config holds all settings for rendering one dataset.
type Config struct {
	Image  ImageConfig  `yaml:"image"`
	Camera CameraConfig `yaml:"camera"`
	Field  FieldConfig  `yaml:"field"`
	Passes PassConfig   `yaml:"passes"`
	Lines  LineConfig   `yaml:"lines"`
	Render RenderConfig `yaml:"render"`
}

// ImageConfig describes the output image.
type ImageConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // "#rrggbb"
}

// CameraConfig places the camera and the dataset.
type CameraConfig struct {
	FOV    float32    `yaml:"fov"` // degrees
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up"`
	Scale  float32    `yaml:"dataset_scale"`

	// RotateAxis and RotateDegrees turn the dataset about its centre.
	RotateAxis    [3]float32 `yaml:"rotate_axis"`
	RotateDegrees float32    `yaml:"rotate_degrees"`
}

// FieldConfig selects the part of the field range which is coloured.
type FieldConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	// AutoRange uses the smallest and largest field value instead of
	// Min and Max.
	AutoRange bool `yaml:"auto_range"`

	// ElementAverage colours every triangle by the mean of its nodes.
	ElementAverage bool `yaml:"element_average"`
}

// PassConfig enables the individual draw passes.
type PassConfig struct {
	Field     *bool `yaml:"field"`
	FreeEdges *bool `yaml:"free_edges"`
	Wireframe *bool `yaml:"wireframe"`
}

// LineConfig styles the edge and wireframe passes.
type LineConfig struct {
	Width float64 `yaml:"width"` // pixels
	Cap   string  `yaml:"cap"`   // butt, round or square
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	Workers       int   `yaml:"workers"` // 0 means one per CPU
	CullBackFaces *bool `yaml:"cull_back_faces"`
}

// Load reads the configuration from a YAML file.  If the file does not
// exist, the default configuration is returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	} else if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML document and fills in defaults for missing values.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Image: ImageConfig{
			Width:      800,
			Height:     600,
			Background: "#ffffff",
		},
		Camera: CameraConfig{
			FOV:    30,
			Near:   1,
			Far:    2000,
			Eye:    [3]float32{0, 0, 100},
			Target: [3]float32{0, 0, 0},
			Up:     [3]float32{0, -1, 0},
			Scale:  100,
		},
		Field: FieldConfig{
			Min: 0,
			Max: 800,
		},
		Passes: PassConfig{
			Field:     boolPtr(true),
			FreeEdges: boolPtr(true),
			Wireframe: boolPtr(true),
		},
		Lines: LineConfig{
			Width: 1,
			Cap:   "butt",
		},
		Render: RenderConfig{
			CullBackFaces: boolPtr(true),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Image.Width == 0 {
		cfg.Image.Width = defaults.Image.Width
	}
	if cfg.Image.Height == 0 {
		cfg.Image.Height = defaults.Image.Height
	}
	if cfg.Image.Background == "" {
		cfg.Image.Background = defaults.Image.Background
	}

	if cfg.Camera.FOV == 0 {
		cfg.Camera.FOV = defaults.Camera.FOV
	}
	if cfg.Camera.Near == 0 {
		cfg.Camera.Near = defaults.Camera.Near
	}
	if cfg.Camera.Far == 0 {
		cfg.Camera.Far = defaults.Camera.Far
	}
	if cfg.Camera.Eye == [3]float32{} {
		cfg.Camera.Eye = defaults.Camera.Eye
	}
	if cfg.Camera.Up == [3]float32{} {
		cfg.Camera.Up = defaults.Camera.Up
	}
	if cfg.Camera.Scale == 0 {
		cfg.Camera.Scale = defaults.Camera.Scale
	}

	if cfg.Field.Min == 0 && cfg.Field.Max == 0 {
		cfg.Field.Min = defaults.Field.Min
		cfg.Field.Max = defaults.Field.Max
	}

	if cfg.Passes.Field == nil {
		cfg.Passes.Field = defaults.Passes.Field
	}
	if cfg.Passes.FreeEdges == nil {
		cfg.Passes.FreeEdges = defaults.Passes.FreeEdges
	}
	if cfg.Passes.Wireframe == nil {
		cfg.Passes.Wireframe = defaults.Passes.Wireframe
	}

	if cfg.Lines.Width == 0 {
		cfg.Lines.Width = defaults.Lines.Width
	}
	if cfg.Lines.Cap == "" {
		cfg.Lines.Cap = defaults.Lines.Cap
	}

	if cfg.Render.CullBackFaces == nil {
		cfg.Render.CullBackFaces = defaults.Render.CullBackFaces
	}
}

// Validate checks the values which cannot be corrected by defaults.
func (cfg *Config) Validate() error {
	if cfg.Image.Width < 0 || cfg.Image.Height < 0 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Image.Width, cfg.Image.Height)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return fmt.Errorf("invalid depth range near=%g far=%g", cfg.Camera.Near, cfg.Camera.Far)
	}
	if !cfg.Field.AutoRange && !(cfg.Field.Min < cfg.Field.Max) {
		return fmt.Errorf("invalid field range [%g, %g]", cfg.Field.Min, cfg.Field.Max)
	}
	if cfg.Lines.Width < 0 {
		return fmt.Errorf("invalid line width %g", cfg.Lines.Width)
	}
	if _, err := cfg.LineCap(); err != nil {
		return err
	}
	if _, err := cfg.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// LineCap converts the configured cap name.
func (cfg *Config) LineCap() (graphics.LineCapStyle, error) {
	switch strings.ToLower(cfg.Lines.Cap) {
	case "butt":
		return graphics.LineCapButt, nil
	case "round":
		return graphics.LineCapRound, nil
	case "square":
		return graphics.LineCapSquare, nil
	}
	return 0, fmt.Errorf("unknown line cap %q", cfg.Lines.Cap)
}

// BackgroundColor parses the "#rrggbb" background colour.
func (cfg *Config) BackgroundColor() (color.NRGBA, error) {
	var c color.NRGBA
	s := cfg.Image.Background
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid background colour %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid background colour %q: %w", s, err)
	}
	c.A = 0xff
	return c, nil
}
