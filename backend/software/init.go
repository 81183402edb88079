// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/overlay/backend"

func init() {
	backend.Register(backend.Software, func() (backend.Device, error) {
		return New(), nil
	})
}
