// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command overlay draws an image over a frame with the overlay render
// operation and saves the result as PNG.
//
// Usage:
//
//	overlay -overlay logo.png -background frame.jpg -placement center
//	overlay -config overlay.yaml
//
// Flags override values read from -config.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/backend"

	_ "github.com/gogpu/overlay/backend/native"
	_ "github.com/gogpu/overlay/backend/software"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		fgPath     = flag.String("overlay", "", "overlay image")
		bgPath     = flag.String("background", "", "background image (optional)")
		output     = flag.String("output", "overlay.png", "output file")
		width      = flag.Int("width", 1920, "output width")
		height     = flag.Int("height", 1080, "output height")
		placement  = flag.String("placement", "right-bottom", "center, left-middle or right-bottom")
		device     = flag.String("backend", "", "native or software (default: best available)")
		reference  = flag.Float64("reference", overlay.ReferenceDimension, "output dimension drawn at native size")
		margin     = flag.Float64("margin", overlay.LeftMiddleMargin, "left-middle margin at reference scale")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		overlay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "overlay":
			cfg.Overlay = *fgPath
		case "background":
			cfg.Background = *bgPath
		case "output":
			cfg.Output = *output
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "placement":
			if err := cfg.Placement.UnmarshalText([]byte(*placement)); err != nil {
				flagErr = err
			}
		case "backend":
			cfg.Backend = *device
		case "reference":
			cfg.Reference = *reference
		case "margin":
			cfg.Margin = *margin
		}
	})
	if flagErr != nil {
		log.Fatalf("Invalid flag: %v", flagErr)
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fg, bg, err := loadImages(context.Background(), &cfg)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}

	dev, err := backend.Open(cfg.Backend)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer dev.Close()

	img, err := render(dev, &cfg, fg, bg)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := writePNG(cfg.Output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Overlay saved to %s (%dx%d, %s)\n", cfg.Output, cfg.Width, cfg.Height, cfg.Placement)
}
