// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend selects an overlay device implementation at runtime.
//
// Backend packages register a factory from init, so importing them is
// enough to make them available:
//
//	import (
//		_ "github.com/gogpu/overlay/backend/native"
//		_ "github.com/gogpu/overlay/backend/software"
//	)
//
// Open("") picks the native HAL device when a GPU backend is usable and
// falls back to the CPU device otherwise:
//
//	dev, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
package backend
