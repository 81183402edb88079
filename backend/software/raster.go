// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"math"

	"github.com/gogpu/overlay"
)

// quad is a triangle strip in framebuffer pixels with its texture
// coordinates. Vertex order matches overlay.QuadVertices.
type quad struct {
	pos [4][2]float64
	uv  [4][2]float64
}

// toPixel maps normalized device coordinates to framebuffer pixels.
// NDC y = -1 is framebuffer row 0, matching the y flip in the overlay
// vertex shader.
func toPixel(x, y float32, width, height int) [2]float64 {
	return [2]float64{
		(float64(x) + 1) / 2 * float64(width),
		(float64(y) + 1) / 2 * float64(height),
	}
}

// rasterQuad draws q into dst, sampling tex, and returns the number of
// pixels written.
//
// The strip is treated as the parallelogram spanned by its first three
// vertices. A pixel is covered when its center lies in the half-open
// parameter range [0,1) x [0,1), so quads sharing an edge never touch the
// same pixel twice.
func rasterQuad(dst *image.RGBA, tex *texture, q *quad) int {
	p0 := q.pos[0]
	e1 := [2]float64{q.pos[1][0] - p0[0], q.pos[1][1] - p0[1]}
	e2 := [2]float64{q.pos[2][0] - p0[0], q.pos[2][1] - p0[1]}
	det := e1[0]*e2[1] - e1[1]*e2[0]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return 0
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range q.pos {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	b := dst.Rect
	x0 := max(b.Min.X, int(math.Floor(minX)))
	y0 := max(b.Min.Y, int(math.Floor(minY)))
	x1 := min(b.Max.X, int(math.Ceil(maxX)))
	y1 := min(b.Max.Y, int(math.Ceil(maxY)))

	tw, th := tex.img.Rect.Dx(), tex.img.Rect.Dy()
	filter := tex.minFilter
	if math.Abs(det) >= float64(tw*th) {
		filter = tex.magFilter
	}

	n := 0
	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5 - p0[1]
		for x := x0; x < x1; x++ {
			cx := float64(x) + 0.5 - p0[0]
			s := (cx*e2[1] - cy*e2[0]) / det
			t := (e1[0]*cy - e1[1]*cx) / det
			if s < 0 || s >= 1 || t < 0 || t >= 1 {
				continue
			}
			u, v := q.texCoord(s, t)
			blendOver(dst, x, y, tex.sample(u, v, filter))
			n++
		}
	}
	return n
}

// texCoord interpolates the texture coordinates bilinearly at (s, t).
func (q *quad) texCoord(s, t float64) (float64, float64) {
	w0 := (1 - s) * (1 - t)
	w1 := s * (1 - t)
	w2 := (1 - s) * t
	w3 := s * t
	u := w0*q.uv[0][0] + w1*q.uv[1][0] + w2*q.uv[2][0] + w3*q.uv[3][0]
	v := w0*q.uv[0][1] + w1*q.uv[1][1] + w2*q.uv[2][1] + w3*q.uv[3][1]
	return u, v
}

// sample returns the premultiplied texel at (u, v) in [0,255] per channel.
func (t *texture) sample(u, v float64, filter overlay.TextureParameterValue) [4]float64 {
	w, h := t.img.Rect.Dx(), t.img.Rect.Dy()
	if filter == overlay.Nearest {
		x := wrap(int(math.Floor(u*float64(w))), w, t.wrapS)
		y := wrap(int(math.Floor(v*float64(h))), h, t.wrapT)
		return t.texel(x, y)
	}

	fx := u*float64(w) - 0.5
	fy := v*float64(h) - 0.5
	ix, iy := math.Floor(fx), math.Floor(fy)
	ax, ay := fx-ix, fy-iy
	xa, xb := wrap(int(ix), w, t.wrapS), wrap(int(ix)+1, w, t.wrapS)
	ya, yb := wrap(int(iy), h, t.wrapT), wrap(int(iy)+1, h, t.wrapT)

	c00, c10 := t.texel(xa, ya), t.texel(xb, ya)
	c01, c11 := t.texel(xa, yb), t.texel(xb, yb)
	var out [4]float64
	for i := range out {
		top := c00[i]*(1-ax) + c10[i]*ax
		bot := c01[i]*(1-ax) + c11[i]*ax
		out[i] = top*(1-ay) + bot*ay
	}
	return out
}

func (t *texture) texel(x, y int) [4]float64 {
	i := t.img.PixOffset(t.img.Rect.Min.X+x, t.img.Rect.Min.Y+y)
	p := t.img.Pix[i : i+4 : i+4]
	return [4]float64{float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])}
}

// wrap maps texel index i into [0, n) with the given wrap mode.
func wrap(i, n int, mode overlay.TextureParameterValue) int {
	if mode == overlay.Repeat {
		return ((i % n) + n) % n
	}
	return min(max(i, 0), n-1)
}

// blendOver composites premultiplied src over the pixel at (x, y).
func blendOver(dst *image.RGBA, x, y int, src [4]float64) {
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	inv := 1 - src[3]/255
	for c := range 4 {
		p[c] = toByte(src[c] + float64(p[c])*inv)
	}
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// premultiply converts a straight-alpha color to premultiplied RGBA bytes.
func premultiply(c overlay.Color) [4]uint8 {
	a := float64(c.A)
	return [4]uint8{
		toByte(float64(c.R) * a * 255),
		toByte(float64(c.G) * a * 255),
		toByte(float64(c.B) * a * 255),
		toByte(a * 255),
	}
}
