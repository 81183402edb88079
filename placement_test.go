// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestPlacementScale(t *testing.T) {
	tests := []struct {
		name   string
		output Size
		want   float64
	}{
		{"landscape uses height", Sz(1920, 1080), 1},
		{"landscape 4k", Sz(3840, 2160), 2},
		{"portrait uses width", Sz(1080, 1920), 1},
		{"portrait small", Sz(540, 960), 0.5},
		{"square uses width", Sz(720, 720), 720.0 / 1080},
		{"barely landscape", Sz(1081, 1080), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlacementScale(tt.output, ReferenceDimension); !approx(got, tt.want) {
				t.Errorf("PlacementScale(%v) = %v, want %v", tt.output, got, tt.want)
			}
		})
	}
}

func TestComputePlacementRightBottom(t *testing.T) {
	cfg := DefaultPlacementConfig()
	outputs := []Size{Sz(1920, 1080), Sz(1080, 1920), Sz(500, 500), Sz(1280, 720), Sz(333, 777)}
	sources := []Size{Sz(100, 100), Sz(640, 120), Sz(1, 300)}

	for _, out := range outputs {
		for _, src := range sources {
			scale, off := ComputePlacement(out, src, RightBottom, cfg)
			scaled := src.Mul(scale)
			if !approx(off.X+scaled.Width, out.Width) || !approx(off.Y+scaled.Height, out.Height) {
				t.Errorf("out=%v src=%v: corner = (%v,%v), want (%v,%v)",
					out, src, off.X+scaled.Width, off.Y+scaled.Height, out.Width, out.Height)
			}
		}
	}
}

func TestComputePlacementCenter(t *testing.T) {
	cfg := DefaultPlacementConfig()
	outputs := []Size{Sz(1920, 1080), Sz(1080, 1920), Sz(500, 500), Sz(1280, 720)}
	src := Sz(200, 50)

	for _, out := range outputs {
		scale, off := ComputePlacement(out, src, Center, cfg)
		scaled := src.Mul(scale)
		if !approx(off.X, (out.Width-scaled.Width)/2) || !approx(off.Y, (out.Height-scaled.Height)/2) {
			t.Errorf("out=%v: offset = %v, want centered", out, off)
		}
		// Equal margins on opposite sides.
		right := out.Width - (off.X + scaled.Width)
		bottom := out.Height - (off.Y + scaled.Height)
		if !approx(off.X, right) || !approx(off.Y, bottom) {
			t.Errorf("out=%v: margins l=%v r=%v t=%v b=%v", out, off.X, right, off.Y, bottom)
		}
	}
}

func TestComputePlacementLeftMiddle(t *testing.T) {
	tests := []struct {
		name   string
		output Size
		cfg    PlacementConfig
		wantX  float64
		wantY  float64
	}{
		{"reference", Sz(1920, 1080), DefaultPlacementConfig(), 33, 490},
		{"4k", Sz(3840, 2160), DefaultPlacementConfig(), 66, 980},
		{"custom margin", Sz(1920, 1080), PlacementConfig{ReferenceDimension: 1080, Margin: 10}, 10, 490},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, off := ComputePlacement(tt.output, Sz(100, 100), LeftMiddle, tt.cfg)
			if !approx(off.X, tt.wantX) || !approx(off.Y, tt.wantY) {
				t.Errorf("offset = %v, want (%v,%v)", off, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestComputeTransformRedSquare(t *testing.T) {
	m := ComputeTransform(Sz(1920, 1080), Sz(100, 100), Center, DefaultPlacementConfig())

	tl := m.TransformPoint(Pt(0, 0))
	br := m.TransformPoint(Pt(100, 100))
	if tl != Pt(910, 490) {
		t.Errorf("top-left = %v, want (910,490)", tl)
	}
	if br != Pt(1010, 590) {
		t.Errorf("bottom-right = %v, want (1010,590)", br)
	}
}

func TestComputeTransformScalesFirst(t *testing.T) {
	m := ComputeTransform(Sz(3840, 2160), Sz(100, 100), RightBottom, DefaultPlacementConfig())
	if m.A != 2 || m.E != 2 {
		t.Errorf("scale = (%v,%v), want (2,2)", m.A, m.E)
	}
	// Translation is in output space, unaffected by the scale.
	if m.C != 3640 || m.F != 1960 {
		t.Errorf("translation = (%v,%v), want (3640,1960)", m.C, m.F)
	}
}

func TestComputeTransformReferenceOverride(t *testing.T) {
	cfg := DefaultPlacementConfig()
	cfg.ReferenceDimension = 720
	m := ComputeTransform(Sz(1280, 720), Sz(10, 10), Center, cfg)
	if m.A != 1 {
		t.Errorf("scale = %v, want 1", m.A)
	}
}

func TestComputeTransformDegenerate(t *testing.T) {
	// Non-positive sizes must not panic.
	_ = ComputeTransform(Sz(0, 0), Sz(100, 100), Center, DefaultPlacementConfig())
	_ = ComputeTransform(Sz(1920, 1080), Sz(0, 0), LeftMiddle, DefaultPlacementConfig())
	_ = ComputeTransform(Sz(-5, 10), Sz(-1, -1), RightBottom, DefaultPlacementConfig())
}

func TestQuadVertices(t *testing.T) {
	tests := []struct {
		name   string
		source Size
		want   [8]float32
	}{
		{"square", Sz(100, 100), [8]float32{0, 0, 100, 0, 0, 100, 100, 100}},
		{"wide", Sz(200, 50), [8]float32{0, 0, 200, 0, 0, 50, 200, 50}},
		{"tall", Sz(30, 90), [8]float32{0, 0, 30, 0, 0, 90, 30, 90}},
		{"empty", Sz(0, 0), [8]float32{}},
		{"zero height", Sz(10, 0), [8]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuadVertices(tt.source); got != tt.want {
				t.Errorf("QuadVertices(%v) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestQuadVerticesAspect(t *testing.T) {
	v := QuadVertices(Sz(640, 480))
	w := v[6] - v[0]
	h := v[7] - v[1]
	if !approx32(w/h, 640.0/480.0) {
		t.Errorf("aspect = %v, want %v", w/h, 640.0/480.0)
	}
}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{"center", Center, false},
		{"CENTER", Center, false},
		{"left-middle", LeftMiddle, false},
		{"left_middle", LeftMiddle, false},
		{"right-bottom", RightBottom, false},
		{" RightBottom ", RightBottom, false},
		{"top-left", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlacement(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlacement(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePlacement(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlacementTextRoundTrip(t *testing.T) {
	for _, p := range []Placement{Center, LeftMiddle, RightBottom} {
		text, err := p.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", p, err)
		}
		var got Placement
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != p {
			t.Errorf("round trip %v -> %q -> %v", p, text, got)
		}
	}
	if _, err := Placement(42).MarshalText(); err == nil {
		t.Error("MarshalText(42) should fail")
	}
	if s := Placement(42).String(); s != "Placement(42)" {
		t.Errorf("String() = %q", s)
	}
}
