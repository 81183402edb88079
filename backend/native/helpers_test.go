// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"image"
	"image/color"
)

func overlaySolid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}
