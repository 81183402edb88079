// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "fmt"

// Orientation selects the texture coordinates a quad is sampled with.
type Orientation uint8

// Orientations. NoRotation samples the texture upright.
const (
	NoRotation Orientation = iota
	RotateCounterclockwise
	RotateClockwise
	Rotate180
	FlipHorizontally
	FlipVertically
	RotateClockwiseAndFlipVertically
	RotateClockwiseAndFlipHorizontally

	orientationCount
)

// Orientations returns every orientation in declaration order.
func Orientations() []Orientation {
	out := make([]Orientation, 0, orientationCount)
	for o := range orientationCount {
		out = append(out, o)
	}
	return out
}

// Texture coordinates per orientation, matching the vertex order of
// QuadVertices. v grows downward, like image rows.
var textureCoordinates = [orientationCount][8]float32{
	NoRotation:                         {0, 0, 1, 0, 0, 1, 1, 1},
	RotateCounterclockwise:             {0, 1, 0, 0, 1, 1, 1, 0},
	RotateClockwise:                    {1, 0, 1, 1, 0, 0, 0, 1},
	Rotate180:                          {1, 1, 0, 1, 1, 0, 0, 0},
	FlipHorizontally:                   {1, 0, 0, 0, 1, 1, 0, 1},
	FlipVertically:                     {0, 1, 1, 1, 0, 0, 1, 0},
	RotateClockwiseAndFlipVertically:   {0, 0, 0, 1, 1, 0, 1, 1},
	RotateClockwiseAndFlipHorizontally: {1, 1, 1, 0, 0, 1, 0, 0},
}

// TextureCoordinates returns the four u/v pairs for o.
// Unknown orientations return the NoRotation coordinates.
func (o Orientation) TextureCoordinates() [8]float32 {
	if o >= orientationCount {
		return textureCoordinates[NoRotation]
	}
	return textureCoordinates[o]
}

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case NoRotation:
		return "none"
	case RotateCounterclockwise:
		return "rotate-ccw"
	case RotateClockwise:
		return "rotate-cw"
	case Rotate180:
		return "rotate-180"
	case FlipHorizontally:
		return "flip-h"
	case FlipVertically:
		return "flip-v"
	case RotateClockwiseAndFlipVertically:
		return "rotate-cw-flip-v"
	case RotateClockwiseAndFlipHorizontally:
		return "rotate-cw-flip-h"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}
