// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/overlay"
)

// Factory opens a new device.
type Factory func() (Device, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Open("") (first that opens wins).
	priority = []string{Native, Software}
)

// Register registers a device factory under name, replacing any earlier
// registration. Backend packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open opens the named backend. An empty name selects the first backend
// in priority order that opens successfully, then any other registered
// backend.
func Open(name string) (Device, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if name != "" {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
		}
		return factory()
	}

	tried := make(map[string]bool, len(factories))
	order := append([]string(nil), priority...)
	rest := make([]string, 0, len(factories))
	for n := range factories {
		rest = append(rest, n)
	}
	sort.Strings(rest)
	order = append(order, rest...)

	for _, n := range order {
		factory, ok := factories[n]
		if !ok || tried[n] {
			continue
		}
		tried[n] = true
		dev, err := factory()
		if err != nil {
			overlay.Logger().Debug("backend: open failed", "backend", n, "err", err)
			continue
		}
		return dev, nil
	}
	return nil, ErrBackendNotAvailable
}
