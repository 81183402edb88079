// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pipeline provides the stages around an overlay.Operation.
//
// Cache recycles output framebuffers by size and owns the shared texture
// coordinate buffers. Source pushes cleared frames into a chain of targets,
// and Capture reads frames back into host memory:
//
//	cache, err := pipeline.NewCache(ctx)
//	if err != nil {
//		return err
//	}
//	defer cache.Close()
//
//	src := pipeline.NewSource(ctx, cache, overlay.Sz(1920, 1080))
//	src.AddTarget(op)
//	op.AddTarget(capture)
//	if err := src.Push(); err != nil {
//		return err
//	}
//	img, err := capture.Last()
package pipeline
