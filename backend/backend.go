// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/overlay"
)

// Backend names.
const (
	Native   = "native"
	Software = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or none of the registered backends could be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Device is an overlay.Device that can read back framebuffers and must be
// closed when no longer needed.
type Device interface {
	overlay.Device
	overlay.PixelReader

	// Close releases every object created through the device.
	Close()
}
