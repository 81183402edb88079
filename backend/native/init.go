// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/overlay/backend"
)

// preferred is the order in which GPU backends are tried by OpenBest.
var preferred = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

func init() {
	backend.Register(backend.Native, func() (backend.Device, error) {
		return OpenBest()
	})
}

// OpenBest opens the first registered GPU backend that yields a device.
// The noop backend is never selected.
func OpenBest(opts ...Option) (*Device, error) {
	var errs []error
	for _, variant := range preferred {
		d, err := Open(variant, opts...)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrBackendUnavailable) {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil, ErrBackendUnavailable
	}
	return nil, errors.Join(errs...)
}
