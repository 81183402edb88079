// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// LoaderConfig holds texture loading limits.
type LoaderConfig struct {
	// MaxTextureDimension is the largest width or height accepted.
	// Default: gputypes.DefaultLimits().MaxTextureDimension2D
	MaxTextureDimension uint32

	// Logger receives load diagnostics. Nil means the package logger.
	Logger *slog.Logger
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		MaxTextureDimension: gputypes.DefaultLimits().MaxTextureDimension2D,
	}
}

// LoadTexture uploads img to a new texture on ctx with the default
// configuration.
func LoadTexture(ctx *Context, img image.Image) (*Texture, error) {
	return DefaultLoaderConfig().Load(ctx, img)
}

// Load uploads img to a new texture on ctx.
//
// The image is rasterized at its native size into premultiplied RGBA. Color
// models other than the RGB family are converted through a generic RGB
// space instead of failing. Any failure is reported as
// ErrTextureUploadFailed and leaves no texture allocated.
func (cfg LoaderConfig) Load(ctx *Context, img image.Image) (*Texture, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	pixels, err := rasterize(img, cfg.MaxTextureDimension, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureUploadFailed, err)
	}

	var (
		res    loadResult
		devErr error
	)
	err = ctx.Do(func(dev Device) {
		res, devErr = upload(dev, pixels, log)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureUploadFailed, err)
	}
	if res.handle == NoTexture {
		if devErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTextureUploadFailed, devErr)
		}
		return nil, ErrTextureUploadFailed
	}
	return newTexture(ctx, res), nil
}

// rasterize draws img top-aligned into a fresh zeroed RGBA buffer of the
// image's own size.
func rasterize(img image.Image, maxDim uint32, log *slog.Logger) (dst *image.RGBA, err error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}
	if maxDim > 0 && (uint64(w) > uint64(maxDim) || uint64(h) > uint64(maxDim)) {
		return nil, fmt.Errorf("image %dx%d exceeds max texture dimension %d", w, h, maxDim)
	}
	if n := uint64(w) * uint64(h) * 4; n > uint64(maxInt) {
		return nil, fmt.Errorf("image %dx%d too large", w, h)
	}

	src := img
	if cs := ClassifyColorModel(img.ColorModel()); !cs.Supported() {
		log.Debug("overlay: converting image through generic RGB", "colorspace", cs)
		src = rgbImage{img}
	}

	defer func() {
		if r := recover(); r != nil {
			dst = nil
			err = fmt.Errorf("rasterize: %v", r)
		}
	}()
	dst = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst, nil
}

const maxInt = int(^uint(0) >> 1)

// upload creates a 2D texture from pixels. A handle that the device still
// recognizes after an error is deleted and NoTexture is returned.
func upload(dev Device, pixels *image.RGBA, log *slog.Logger) (loadResult, error) {
	if stale := dev.Err(); stale != nil {
		log.Debug("overlay: discarding earlier device error", "err", stale)
	}

	w, h := pixels.Rect.Dx(), pixels.Rect.Dy()
	res := loadResult{
		handle: dev.GenTexture(),
		target: Texture2D,
		width:  uint32(w),
		height: uint32(h),
	}
	dev.BindTexture(Texture2D, res.handle)
	dev.TexParameter(Texture2D, TextureMinFilter, Linear)
	dev.TexParameter(Texture2D, TextureMagFilter, Linear)
	dev.TexParameter(Texture2D, TextureWrapS, ClampToEdge)
	dev.TexParameter(Texture2D, TextureWrapT, ClampToEdge)
	dev.TexImage2D(Texture2D, 0, w, h, FormatRGBA8, pixels.Pix)

	err := dev.Err()
	if err != nil {
		if dev.IsTexture(res.handle) {
			dev.DeleteTexture(res.handle)
			res.handle = NoTexture
		} else if res.handle != NoTexture {
			log.Warn("overlay: device reported an error during texture upload",
				"handle", res.handle, "err", err)
		}
	}
	return res, err
}
