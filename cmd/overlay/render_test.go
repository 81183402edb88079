// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/backend"
	"github.com/gogpu/overlay/backend/software"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 2 && int(y)-int(x) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func newDevice(t *testing.T) backend.Device {
	t.Helper()
	dev := software.New(software.WithShaderValidation(false))
	t.Cleanup(dev.Close)
	return dev
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()
	fgPath := filepath.Join(dir, "fg.png")
	bgPath := filepath.Join(dir, "bg.png")
	if err := writePNG(fgPath, solid(8, 4, color.RGBA{R: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	if err := writePNG(bgPath, solid(10, 10, color.RGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Overlay = fgPath
	fg, bg, err := loadImages(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("loadImages: %v", err)
	}
	if fg.Bounds().Dx() != 8 || bg != nil {
		t.Errorf("fg = %v, bg = %v", fg.Bounds(), bg)
	}

	cfg.Background = bgPath
	if _, bg, err = loadImages(context.Background(), &cfg); err != nil || bg == nil {
		t.Fatalf("loadImages with background: %v", err)
	}

	cfg.Background = filepath.Join(dir, "missing.png")
	if _, _, err := loadImages(context.Background(), &cfg); err == nil {
		t.Error("missing background accepted")
	}

	notImage := filepath.Join(dir, "text.png")
	if err := os.WriteFile(notImage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Overlay, cfg.Background = notImage, ""
	if _, _, err := loadImages(context.Background(), &cfg); err == nil {
		t.Error("undecodable overlay accepted")
	}
}

func TestRender(t *testing.T) {
	dev := newDevice(t)

	cfg := defaultConfig()
	cfg.Overlay = "fg"
	cfg.Width, cfg.Height = 64, 36
	cfg.Reference = 36
	cfg.Placement = overlay.Center

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	frame, err := render(dev, &cfg, solid(8, 8, red), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if frame.Bounds() != image.Rect(0, 0, 64, 36) {
		t.Fatalf("bounds = %v", frame.Bounds())
	}
	if got := frame.RGBAAt(32, 18); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := frame.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("corner = %v, want transparent", got)
	}

	out, err := render(dev, &cfg, solid(8, 8, red), solid(10, 10, blue))
	if err != nil {
		t.Fatalf("render with background: %v", err)
	}
	if got := out.RGBAAt(32, 18); got != red {
		t.Errorf("center = %v, want red", got)
	}
	if got := out.RGBAAt(0, 0); !near(got, blue) {
		t.Errorf("corner = %v, want blue", got)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := writePNG(path, out); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	img, err := decodeFile(path)
	if err != nil || img.Bounds() != out.Bounds() {
		t.Errorf("decode output: %v, %v", img, err)
	}
}

func TestRenderEmptyOverlay(t *testing.T) {
	dev := newDevice(t)

	cfg := defaultConfig()
	cfg.Overlay = "fg"
	cfg.Width, cfg.Height = 16, 16
	if _, err := render(dev, &cfg, image.NewRGBA(image.Rect(0, 0, 0, 0)), nil); err == nil {
		t.Error("empty overlay rendered")
	}
}
