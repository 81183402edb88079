// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"image"
	"image/color"
)

// ColorSpace is the color space family of a source image.
type ColorSpace uint8

// Color spaces.
const (
	ColorSpaceUnknown ColorSpace = iota
	ColorSpaceRGB
	ColorSpaceMonochrome
	ColorSpaceCMYK
	ColorSpaceIndexed
)

// String returns the color space name.
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceUnknown:
		return "unknown"
	case ColorSpaceRGB:
		return "rgb"
	case ColorSpaceMonochrome:
		return "monochrome"
	case ColorSpaceCMYK:
		return "cmyk"
	case ColorSpaceIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("ColorSpace(%d)", cs)
	}
}

// Supported reports whether images in this space are rasterized as they
// are. Other spaces go through a generic RGB conversion first.
func (cs ColorSpace) Supported() bool {
	return cs == ColorSpaceRGB
}

// ClassifyColorModel returns the color space family of m.
// Alpha-only models count as RGB: they rasterize as RGB with alpha.
func ClassifyColorModel(m color.Model) ColorSpace {
	if _, ok := m.(color.Palette); ok {
		return ColorSpaceIndexed
	}
	switch m {
	case color.RGBAModel, color.RGBA64Model,
		color.NRGBAModel, color.NRGBA64Model,
		color.YCbCrModel, color.NYCbCrAModel,
		color.AlphaModel, color.Alpha16Model:
		return ColorSpaceRGB
	case color.GrayModel, color.Gray16Model:
		return ColorSpaceMonochrome
	case color.CMYKModel:
		return ColorSpaceCMYK
	}
	return ColorSpaceUnknown
}

// rgbImage presents any image through the generic device RGB model.
type rgbImage struct {
	image.Image
}

func (m rgbImage) ColorModel() color.Model {
	return color.RGBA64Model
}

func (m rgbImage) At(x, y int) color.Color {
	return color.RGBA64Model.Convert(m.Image.At(x, y))
}
