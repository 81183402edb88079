// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"strings"
)

// Placement is the anchor an overlay is positioned at within the output frame.
type Placement uint8

const (
	// RightBottom aligns the overlay's bottom-right corner with the output's.
	RightBottom Placement = iota

	// Center centers the overlay on both axes.
	Center

	// LeftMiddle centers the overlay vertically, inset from the left edge
	// by the scaled margin.
	LeftMiddle
)

// String returns the configuration name of the placement.
func (p Placement) String() string {
	switch p {
	case Center:
		return "center"
	case LeftMiddle:
		return "left-middle"
	case RightBottom:
		return "right-bottom"
	default:
		return fmt.Sprintf("Placement(%d)", p)
	}
}

// ParsePlacement parses a placement name as produced by Placement.String.
// Matching is case-insensitive and accepts underscores for dashes.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "center", "centre":
		return Center, nil
	case "left-middle", "leftmiddle":
		return LeftMiddle, nil
	case "right-bottom", "rightbottom":
		return RightBottom, nil
	}
	return 0, fmt.Errorf("overlay: unknown placement %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	if p > LeftMiddle {
		return nil, fmt.Errorf("overlay: invalid placement %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	v, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Product constants for placement. They are the defaults of
// PlacementConfig and may be overridden per operation.
const (
	// ReferenceDimension is the output dimension at which an overlay is
	// drawn at its native image size.
	ReferenceDimension = 1080

	// LeftMiddleMargin is the left inset for LeftMiddle, in pixels at
	// reference scale.
	LeftMiddleMargin = 33
)

// PlacementConfig holds the scaling parameters of the placement calculator.
type PlacementConfig struct {
	// ReferenceDimension is the output dimension that maps to scale 1.
	// Default: 1080
	ReferenceDimension float64

	// Margin is the LeftMiddle inset at reference scale.
	// Default: 33
	Margin float64
}

// DefaultPlacementConfig returns the product defaults.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		ReferenceDimension: ReferenceDimension,
		Margin:             LeftMiddleMargin,
	}
}

// PlacementScale returns the uniform scale applied to an overlay drawn into
// an output of the given size. Landscape outputs normalize against their
// height, all others (square included) against their width.
func PlacementScale(output Size, reference float64) float64 {
	if output.Ratio() > 1 {
		return output.Height / reference
	}
	return output.Width / reference
}

// ComputePlacement returns the scale and the top-left offset of an overlay of
// size source placed into output. Non-positive sizes yield a degenerate
// placement rather than an error.
func ComputePlacement(output, source Size, p Placement, cfg PlacementConfig) (float64, Point) {
	scale := PlacementScale(output, cfg.ReferenceDimension)
	scaled := source.Mul(scale)

	var offset Point
	switch p {
	case Center:
		offset = Pt((output.Width-scaled.Width)/2, (output.Height-scaled.Height)/2)
	case LeftMiddle:
		offset = Pt(cfg.Margin*scale, (output.Height-scaled.Height)/2)
	default:
		offset = Pt(output.Width-scaled.Width, output.Height-scaled.Height)
	}
	return scale, offset
}

// ComputeTransform returns the model transform of an overlay of size source
// placed into output: a uniform scale followed by a translation in output
// space.
func ComputeTransform(output, source Size, p Placement, cfg PlacementConfig) Matrix {
	scale, offset := ComputePlacement(output, source, p, cfg)
	return Translate(offset.X, offset.Y).Multiply(Scale(scale, scale))
}

// QuadVertices returns the triangle-strip corners of the overlay quad in
// source pixel units, in the order (0,0), (w,0), (0,h), (w,h), where w:h is
// the source aspect ratio. The result does not depend on the output size.
func QuadVertices(source Size) [8]float32 {
	h := source.Height
	w := source.Ratio() * h
	if source.Empty() {
		w, h = 0, 0
	}
	x, y := float32(w), float32(h)
	return [8]float32{
		0, 0,
		x, 0,
		0, y,
		x, y,
	}
}
