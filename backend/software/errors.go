// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "errors"

// Errors recorded by Device and reported through Err.
var (
	// ErrInvalidHandle is recorded when a call names an unknown object.
	ErrInvalidHandle = errors.New("software: invalid handle")

	// ErrInvalidValue is recorded when an argument is out of range.
	ErrInvalidValue = errors.New("software: invalid value")

	// ErrInvalidOperation is recorded when a call is not allowed in the
	// current state, such as uploading with no texture bound.
	ErrInvalidOperation = errors.New("software: invalid operation")

	// ErrOutOfMemory is recorded when an allocation exceeds the device limits.
	ErrOutOfMemory = errors.New("software: out of memory")
)
