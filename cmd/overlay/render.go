// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	// Registered image decoders.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/backend"
	"github.com/gogpu/overlay/pipeline"
)

// decodeFile decodes the image at path in any registered format.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	overlay.Logger().Debug("image decoded", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// loadImages decodes the overlay and the optional background concurrently.
func loadImages(ctx context.Context, cfg *config) (fg, bg image.Image, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fg, err = decodeFile(cfg.Overlay)
		return err
	})
	if cfg.Background != "" {
		g.Go(func() error {
			var err error
			bg, err = decodeFile(cfg.Background)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fg, bg, nil
}

// render draws fg into one output frame of the configured size on dev and
// returns the frame, composited over bg when bg is not nil.
func render(dev backend.Device, cfg *config, fg, bg image.Image) (*image.RGBA, error) {
	ctx := overlay.NewContext(dev)
	defer ctx.Close()

	cache, err := pipeline.NewCache(ctx)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	op, err := overlay.NewOperation(ctx, cache, fg, cfg.options()...)
	if err != nil {
		return nil, err
	}
	defer op.Close()
	if !op.HasTexture() {
		return nil, fmt.Errorf("overlay image %s could not be loaded", cfg.Overlay)
	}

	size := overlay.Sz(float64(cfg.Width), float64(cfg.Height))
	src := pipeline.NewSource(ctx, cache, size)
	src.AddTarget(op)
	capture := pipeline.NewCapture(ctx)
	op.AddTarget(capture)

	if err := src.Push(); err != nil {
		return nil, err
	}
	frame, err := capture.Last()
	if err != nil {
		return nil, err
	}
	if bg == nil {
		return frame, nil
	}
	return composite(frame, bg), nil
}

// composite scales bg to the frame size and draws the premultiplied frame
// over it.
func composite(frame *image.RGBA, bg image.Image) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	draw.CatmullRom.Scale(out, out.Bounds(), bg, bg.Bounds(), draw.Src, nil)
	draw.Draw(out, out.Bounds(), frame, image.Point{}, draw.Over)
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
