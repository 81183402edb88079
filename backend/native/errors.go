// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "errors"

var (
	// ErrNoGPU is returned by Open when no adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrBackendUnavailable is returned by Open when the requested HAL
	// backend is not registered. Backends register themselves when their
	// package is imported.
	ErrBackendUnavailable = errors.New("native: backend not available")

	// ErrNoHAL is returned by FromProvider when the provider does not
	// expose HAL objects.
	ErrNoHAL = errors.New("native: provider does not expose HAL types")

	// ErrInvalidHandle is recorded when a call names an unknown object.
	ErrInvalidHandle = errors.New("native: invalid handle")

	// ErrInvalidValue is recorded when an argument is out of range.
	ErrInvalidValue = errors.New("native: invalid value")

	// ErrInvalidOperation is recorded when a call is not allowed in the
	// current state.
	ErrInvalidOperation = errors.New("native: invalid operation")
)
