// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "testing"

func TestOrientations(t *testing.T) {
	all := Orientations()
	if len(all) != 8 {
		t.Fatalf("len(Orientations()) = %d, want 8", len(all))
	}
	seen := make(map[[8]float32]Orientation)
	for _, o := range all {
		tc := o.TextureCoordinates()
		if prev, ok := seen[tc]; ok {
			t.Errorf("%v and %v share texture coordinates", prev, o)
		}
		seen[tc] = o
		for i, v := range tc {
			if v != 0 && v != 1 {
				t.Errorf("%v coordinate %d = %v", o, i, v)
			}
		}
	}
}

// NoRotation maps each quad corner to the same texture corner.
func TestNoRotationMatchesQuad(t *testing.T) {
	v := QuadVertices(Sz(1, 1))
	if NoRotation.TextureCoordinates() != v {
		t.Errorf("NoRotation = %v, want %v", NoRotation.TextureCoordinates(), v)
	}
}

func TestOrientationComposition(t *testing.T) {
	// Rotate180 is FlipHorizontally followed by FlipVertically.
	fh := FlipHorizontally.TextureCoordinates()
	r := Rotate180.TextureCoordinates()
	for i := 0; i < 8; i += 2 {
		if r[i] != fh[i] || r[i+1] != 1-fh[i+1] {
			t.Errorf("vertex %d: rotate180 %v, flipH %v", i/2, r[i:i+2], fh[i:i+2])
		}
	}
}

func TestOrientationUnknown(t *testing.T) {
	if Orientation(99).TextureCoordinates() != NoRotation.TextureCoordinates() {
		t.Error("unknown orientation should fall back to NoRotation")
	}
	if Orientation(99).String() != "Orientation(99)" {
		t.Errorf("String() = %q", Orientation(99).String())
	}
	if RotateClockwise.String() != "rotate-cw" {
		t.Errorf("String() = %q", RotateClockwise.String())
	}
}
