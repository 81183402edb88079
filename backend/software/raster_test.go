// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/overlay"
)

func testTexture(w, h int, filter, wrapMode overlay.TextureParameterValue) *texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &texture{img: img, minFilter: filter, magFilter: filter, wrapS: wrapMode, wrapT: wrapMode}
}

func axisQuad(x0, y0, x1, y1 float64) *quad {
	return &quad{
		pos: [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}},
		uv:  [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	}
}

func TestToPixel(t *testing.T) {
	tests := []struct {
		x, y float32
		want [2]float64
	}{
		{-1, -1, [2]float64{0, 0}},
		{1, 1, [2]float64{200, 100}},
		{0, 0, [2]float64{100, 50}},
	}
	for _, tt := range tests {
		if got := toPixel(tt.x, tt.y, 200, 100); got != tt.want {
			t.Errorf("toPixel(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n int
		mode overlay.TextureParameterValue
		want int
	}{
		{-1, 4, overlay.ClampToEdge, 0},
		{4, 4, overlay.ClampToEdge, 3},
		{2, 4, overlay.ClampToEdge, 2},
		{-1, 4, overlay.Repeat, 3},
		{4, 4, overlay.Repeat, 0},
		{9, 4, overlay.Repeat, 1},
	}
	for _, tt := range tests {
		if got := wrap(tt.i, tt.n, tt.mode); got != tt.want {
			t.Errorf("wrap(%d, %d, %d) = %d, want %d", tt.i, tt.n, tt.mode, got, tt.want)
		}
	}
}

func TestRasterQuadCoverage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	tex := testTexture(1, 1, overlay.Nearest, overlay.ClampToEdge)
	tex.img.Pix = []uint8{255, 0, 0, 255}

	n := rasterQuad(dst, tex, axisQuad(2, 3, 6, 5))
	if n != 8 {
		t.Errorf("covered %d pixels, want 8", n)
	}
	for y := range 10 {
		for x := range 10 {
			inside := x >= 2 && x < 6 && y >= 3 && y < 5
			got := dst.RGBAAt(x, y)
			if inside && got != (color.RGBA{R: 255, A: 255}) {
				t.Errorf("(%d,%d) = %v, want red", x, y, got)
			}
			if !inside && got != (color.RGBA{}) {
				t.Errorf("(%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}
}

// Quads sharing an edge must not both cover the pixels along it.
func TestRasterQuadSharedEdge(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 4))
	tex := testTexture(1, 1, overlay.Nearest, overlay.ClampToEdge)
	tex.img.Pix = []uint8{0, 0, 128, 128}

	a := rasterQuad(dst, tex, axisQuad(0, 0, 4.5, 4))
	b := rasterQuad(dst, tex, axisQuad(4.5, 0, 8, 4))
	if a+b != 32 {
		t.Errorf("covered %d+%d pixels, want 32", a, b)
	}
	for x := range 8 {
		if got := dst.RGBAAt(x, 1); got != (color.RGBA{B: 128, A: 128}) {
			t.Errorf("(%d,1) = %v, want a single coat", x, got)
		}
	}
}

func TestRasterQuadClipsToTarget(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tex := testTexture(1, 1, overlay.Nearest, overlay.ClampToEdge)
	tex.img.Pix = []uint8{255, 255, 255, 255}

	if n := rasterQuad(dst, tex, axisQuad(-10, -10, 2, 2)); n != 4 {
		t.Errorf("covered %d pixels, want 4", n)
	}
	if n := rasterQuad(dst, tex, axisQuad(10, 10, 20, 20)); n != 0 {
		t.Errorf("offscreen quad covered %d pixels", n)
	}
}

func TestRasterQuadDegenerate(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tex := testTexture(1, 1, overlay.Linear, overlay.ClampToEdge)
	if n := rasterQuad(dst, tex, axisQuad(1, 1, 1, 3)); n != 0 {
		t.Errorf("zero-width quad covered %d pixels", n)
	}
}

// Swapped texture coordinates flip the image horizontally.
func TestRasterQuadTextureCoordinates(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tex := testTexture(2, 1, overlay.Nearest, overlay.ClampToEdge)
	copy(tex.img.Pix, []uint8{255, 0, 0, 255, 0, 255, 0, 255})

	q := axisQuad(0, 0, 2, 1)
	q.uv = [4][2]float64{{1, 0}, {0, 0}, {1, 1}, {0, 1}}
	rasterQuad(dst, tex, q)

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("left = %v, want green", got)
	}
	if got := dst.RGBAAt(1, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("right = %v, want red", got)
	}
}

func TestSampleLinear(t *testing.T) {
	tex := testTexture(2, 1, overlay.Linear, overlay.ClampToEdge)
	copy(tex.img.Pix, []uint8{0, 0, 0, 255, 200, 0, 0, 255})

	tests := []struct {
		u    float64
		want float64
	}{
		{0.25, 0},   // center of texel 0
		{0.75, 200}, // center of texel 1
		{0.5, 100},  // halfway
		{0, 0},      // clamped
		{1, 200},    // clamped
	}
	for _, tt := range tests {
		got := tex.sample(tt.u, 0.5, overlay.Linear)
		if d := got[0] - tt.want; d > 1e-9 || d < -1e-9 {
			t.Errorf("sample(%v).R = %v, want %v", tt.u, got[0], tt.want)
		}
	}
}

func TestSampleLinearRepeat(t *testing.T) {
	tex := testTexture(2, 1, overlay.Linear, overlay.Repeat)
	copy(tex.img.Pix, []uint8{0, 0, 0, 255, 200, 0, 0, 255})

	// u = 0 blends texel 1 (wrapped) and texel 0 equally.
	if got := tex.sample(0, 0.5, overlay.Linear); got[0] != 100 {
		t.Errorf("sample(0).R = %v, want 100", got[0])
	}
}

func TestBlendOver(t *testing.T) {
	tests := []struct {
		name string
		dst  color.RGBA
		src  [4]float64
		want color.RGBA
	}{
		{"opaque replaces", color.RGBA{B: 255, A: 255}, [4]float64{255, 0, 0, 255}, color.RGBA{R: 255, A: 255}},
		{"transparent keeps", color.RGBA{B: 255, A: 255}, [4]float64{}, color.RGBA{B: 255, A: 255}},
		{"half over opaque", color.RGBA{B: 255, A: 255}, [4]float64{128, 0, 0, 128}, color.RGBA{R: 128, B: 127, A: 255}},
		{"half over clear", color.RGBA{}, [4]float64{128, 0, 0, 128}, color.RGBA{R: 128, A: 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
			dst.SetRGBA(0, 0, tt.dst)
			blendOver(dst, 0, 0, tt.src)
			if got := dst.RGBAAt(0, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPremultiply(t *testing.T) {
	tests := []struct {
		c    overlay.Color
		want [4]uint8
	}{
		{overlay.Transparent, [4]uint8{}},
		{overlay.Color{R: 1, G: 1, B: 1, A: 1}, [4]uint8{255, 255, 255, 255}},
		{overlay.Color{R: 1, A: 0.5}, [4]uint8{128, 0, 0, 128}},
		{overlay.Color{R: 2, A: 1}, [4]uint8{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := premultiply(tt.c); got != tt.want {
			t.Errorf("premultiply(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}
