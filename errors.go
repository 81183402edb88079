// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "errors"

// Errors returned by overlay.
var (
	// ErrTextureUploadFailed is returned when a bitmap could not be rasterized
	// or the device rejected the texture upload.
	ErrTextureUploadFailed = errors.New("overlay: texture upload failed")

	// ErrContextClosed is returned when work is submitted to a closed Context.
	ErrContextClosed = errors.New("overlay: context closed")

	// ErrNilContext is returned when a nil *Context is passed.
	ErrNilContext = errors.New("overlay: context is nil")

	// ErrNilCache is returned when an operation is created without a framebuffer cache.
	ErrNilCache = errors.New("overlay: framebuffer cache is nil")

	// ErrShaderCompile is returned when the device cannot build the shader pair.
	ErrShaderCompile = errors.New("overlay: shader compilation failed")
)
