// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import "errors"

var (
	// ErrClosed is returned by a Cache after Close.
	ErrClosed = errors.New("pipeline: cache closed")

	// ErrInvalidSize is returned for framebuffer sizes that are not
	// positive whole pixels.
	ErrInvalidSize = errors.New("pipeline: invalid framebuffer size")

	// ErrNoReadback is returned by Capture when the device cannot read
	// framebuffers back.
	ErrNoReadback = errors.New("pipeline: device does not support readback")

	// ErrNoFrame is returned by Capture before any frame arrived.
	ErrNoFrame = errors.New("pipeline: no frame captured")
)
