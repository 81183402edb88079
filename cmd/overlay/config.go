// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/overlay"
)

// config describes one overlay render.
type config struct {
	Overlay    string            `yaml:"overlay"`
	Background string            `yaml:"background"`
	Output     string            `yaml:"output"`
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Placement  overlay.Placement `yaml:"placement"`
	Backend    string            `yaml:"backend"`
	Reference  float64           `yaml:"reference"`
	Margin     float64           `yaml:"margin"`
	ImageSize  *sizeConfig       `yaml:"image_size,omitempty"`
}

type sizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func defaultConfig() config {
	return config{
		Output:    "overlay.png",
		Width:     1920,
		Height:    1080,
		Placement: overlay.RightBottom,
		Reference: overlay.ReferenceDimension,
		Margin:    overlay.LeftMiddleMargin,
	}
}

// loadConfig reads a YAML file over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Overlay == "" {
		return errors.New("no overlay image")
	}
	if c.Output == "" {
		return errors.New("no output file")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", c.Width, c.Height)
	}
	if c.Reference <= 0 {
		return fmt.Errorf("invalid reference dimension %v", c.Reference)
	}
	if c.ImageSize != nil && (c.ImageSize.Width <= 0 || c.ImageSize.Height <= 0) {
		return fmt.Errorf("invalid image size %vx%v", c.ImageSize.Width, c.ImageSize.Height)
	}
	return nil
}

func (c *config) options() []overlay.Option {
	opts := []overlay.Option{
		overlay.WithPlacement(c.Placement),
		overlay.WithReferenceDimension(c.Reference),
		overlay.WithMargin(c.Margin),
	}
	if c.ImageSize != nil {
		opts = append(opts, overlay.WithImageSize(overlay.Sz(c.ImageSize.Width, c.ImageSize.Height)))
	}
	return opts
}
