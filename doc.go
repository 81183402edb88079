// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay draws an image as a placed, scaled quad into every frame of
// a GPU image pipeline.
//
// # Overview
//
// An Operation owns one GPU texture and a fixed shader pair. For each
// inbound frame it computes an orthographic projection for the frame size
// and a placement transform for the overlay, clears a fresh output frame to
// transparent black, draws the quad, releases the inbound frame and forwards
// the output to its targets.
//
// # Quick Start
//
//	dev := software.New()
//	ctx := overlay.NewContext(dev)
//	defer ctx.Close()
//
//	cache, err := pipeline.NewCache(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cache.Close()
//
//	op, err := overlay.NewOperation(ctx, cache, logo,
//		overlay.WithPlacement(overlay.Center))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer op.Close()
//
//	op.AddTarget(sink)
//	op.NewFramebufferAvailable(frame)
//
// # Placement
//
// The overlay is scaled by the output's height (landscape) or width
// (portrait and square) relative to ReferenceDimension, then anchored:
//
//   - Center: centered on both axes
//   - LeftMiddle: vertically centered, LeftMiddleMargin from the left edge
//   - RightBottom: bottom-right corner on the output's bottom-right corner
//
// Output pixel space has its origin at the top-left corner with y down.
//
// # Threading
//
// All device work runs on the render goroutine of a Context, locked to one
// OS thread. Textures are released exactly once, on that goroutine, either
// explicitly or when they become unreachable.
//
// # Backends
//
// Device implementations live in backend/software (CPU reference) and
// backend/native (gogpu/wgpu HAL).
package overlay
