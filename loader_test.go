// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestClassifyColorModel(t *testing.T) {
	tests := []struct {
		name  string
		model color.Model
		want  ColorSpace
	}{
		{"rgba", color.RGBAModel, ColorSpaceRGB},
		{"rgba64", color.RGBA64Model, ColorSpaceRGB},
		{"nrgba", color.NRGBAModel, ColorSpaceRGB},
		{"nrgba64", color.NRGBA64Model, ColorSpaceRGB},
		{"ycbcr", color.YCbCrModel, ColorSpaceRGB},
		{"nycbcra", color.NYCbCrAModel, ColorSpaceRGB},
		{"alpha", color.AlphaModel, ColorSpaceRGB},
		{"alpha16", color.Alpha16Model, ColorSpaceRGB},
		{"gray", color.GrayModel, ColorSpaceMonochrome},
		{"gray16", color.Gray16Model, ColorSpaceMonochrome},
		{"cmyk", color.CMYKModel, ColorSpaceCMYK},
		{"palette", color.Palette{color.Black, color.White}, ColorSpaceIndexed},
		{"custom", color.ModelFunc(func(c color.Color) color.Color { return c }), ColorSpaceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyColorModel(tt.model)
			if got != tt.want {
				t.Errorf("ClassifyColorModel() = %v, want %v", got, tt.want)
			}
			if got.Supported() != (tt.want == ColorSpaceRGB) {
				t.Errorf("Supported() = %v", got.Supported())
			}
		})
	}
}

func TestLoadTexture(t *testing.T) {
	ctx, dev := newTestContext(t)

	tex, err := LoadTexture(ctx, solidRGBA(30, 20, color.RGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	defer tex.Release()

	if tex.Width() != 30 || tex.Height() != 20 || tex.Target() != Texture2D {
		t.Errorf("texture = %v", tex)
	}

	want := []string{
		"GenTexture",
		"BindTexture 2D 1",
		"TexParameter 0 1", // min linear
		"TexParameter 1 1", // mag linear
		"TexParameter 2 2", // wrap s clamp
		"TexParameter 3 2", // wrap t clamp
		"TexImage2D 0 30x20 2400",
	}
	calls := dev.Calls()
	if len(calls) < len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("call %d = %q, want %q", i, calls[i], w)
		}
	}
}

// Unsupported color models are converted, never rejected.
func TestLoadTextureUnsupportedColorModels(t *testing.T) {
	rect := image.Rect(0, 0, 17, 9)
	pal := image.NewPaletted(rect, color.Palette{color.Black, color.RGBA{R: 255, A: 255}})
	for i := range pal.Pix {
		pal.Pix[i] = uint8(i % 2)
	}

	images := map[string]image.Image{
		"gray":     image.NewGray(rect),
		"gray16":   image.NewGray16(rect),
		"cmyk":     image.NewCMYK(rect),
		"paletted": pal,
		"offset":   image.NewGray(image.Rect(5, 5, 22, 14)),
	}
	for name, img := range images {
		t.Run(name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			tex, err := LoadTexture(ctx, img)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			defer tex.Release()
			if tex.Width() != 17 || tex.Height() != 9 {
				t.Errorf("size = %dx%d, want 17x9", tex.Width(), tex.Height())
			}
		})
	}
}

func TestRasterizePixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 12))
	src.SetNRGBA(10, 10, color.NRGBA{R: 255, A: 128})
	src.SetNRGBA(11, 11, color.NRGBA{B: 255, A: 255})

	dst, err := rasterize(src, 0, Logger())
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if dst.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	// Premultiplied: 255 * 128/255 = 128.
	if got := dst.RGBAAt(0, 0); got.R != 128 || got.A != 128 {
		t.Errorf("pixel (0,0) = %v, want premultiplied half red", got)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel (1,1) = %v", got)
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("pixel (1,0) = %v, want zero", got)
	}
}

func TestRasterizeConvertsGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 1, 1))
	src.SetGray(0, 0, color.Gray{Y: 200})

	dst, err := rasterize(src, 0, Logger())
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

type panicImage struct{ image.Image }

func (panicImage) At(int, int) color.Color { panic("broken image") }

func TestLoadTextureFailuresMakeNoDeviceCalls(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		max  uint32
	}{
		{"nil", nil, 0},
		{"zero size", image.NewRGBA(image.Rect(0, 0, 0, 0)), 0},
		{"zero width", image.NewRGBA(image.Rect(0, 0, 0, 10)), 0},
		{"too wide", image.NewRGBA(image.Rect(0, 0, 65, 1)), 64},
		{"panics", panicImage{image.NewRGBA(image.Rect(0, 0, 2, 2))}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev := newTestContext(t)
			cfg := DefaultLoaderConfig()
			cfg.MaxTextureDimension = tt.max

			tex, err := cfg.Load(ctx, tt.img)
			if !errors.Is(err, ErrTextureUploadFailed) {
				t.Fatalf("err = %v, want ErrTextureUploadFailed", err)
			}
			if tex != nil {
				t.Error("texture returned on failure")
			}
			if calls := dev.Calls(); len(calls) != 0 {
				t.Errorf("device calls = %v, want none", calls)
			}
		})
	}
}

func TestLoadTextureDeviceError(t *testing.T) {
	ctx, dev := newTestContext(t)
	dev.uploadErr = errInjected

	tex, err := LoadTexture(ctx, solidRGBA(4, 4, color.RGBA{A: 255}))
	if !errors.Is(err, ErrTextureUploadFailed) || !errors.Is(err, errInjected) {
		t.Fatalf("err = %v, want ErrTextureUploadFailed wrapping the device error", err)
	}
	if tex != nil {
		t.Error("texture returned on failure")
	}
	if n := dev.count("DeleteTexture"); n != 1 {
		t.Errorf("DeleteTexture calls = %d, want 1", n)
	}
	if len(dev.textures) != 0 {
		t.Errorf("live textures = %v, want none", dev.textures)
	}
}

// A device error with a handle the device no longer knows keeps the handle.
func TestLoadTextureDeviceErrorHandleGone(t *testing.T) {
	ctx, dev := newTestContext(t)
	dev.uploadErr = errInjected
	dev.dropOnError = true

	tex, err := LoadTexture(ctx, solidRGBA(4, 4, color.RGBA{A: 255}))
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Handle() == NoTexture {
		t.Error("handle should be kept")
	}
	if n := dev.count("DeleteTexture"); n != 0 {
		t.Errorf("DeleteTexture calls = %d, want 0", n)
	}
	tex.MarkCleared()
}

func TestLoadTextureNoHandle(t *testing.T) {
	ctx, dev := newTestContext(t)
	dev.genNone = true

	_, err := LoadTexture(ctx, solidRGBA(4, 4, color.RGBA{A: 255}))
	if !errors.Is(err, ErrTextureUploadFailed) {
		t.Fatalf("err = %v, want ErrTextureUploadFailed", err)
	}
}

func TestLoadTextureNilContext(t *testing.T) {
	if _, err := LoadTexture(nil, solidRGBA(1, 1, color.RGBA{})); !errors.Is(err, ErrNilContext) {
		t.Errorf("err = %v, want ErrNilContext", err)
	}
}

func TestLoadTextureClosedContext(t *testing.T) {
	dev := newRecordingDevice()
	ctx := NewContext(dev)
	_ = ctx.Close()

	_, err := LoadTexture(ctx, solidRGBA(1, 1, color.RGBA{}))
	if !errors.Is(err, ErrTextureUploadFailed) || !errors.Is(err, ErrContextClosed) {
		t.Errorf("err = %v", err)
	}
}
