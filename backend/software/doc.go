// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides a CPU implementation of overlay.Device.
//
// It is the reference rasterizer: textures and framebuffers are
// premultiplied RGBA images in host memory, programs are WGSL shader pairs
// validated with naga, and Draw evaluates the overlay shader pair
// (orthographicMatrix * transformMatrix * position, then a texture sample)
// per pixel. Framebuffers can be read back through ReadPixels.
//
//	dev := software.New()
//	ctx := overlay.NewContext(dev)
//	defer ctx.Close()
//
// Like every overlay.Device, a Device must only be used from the render
// goroutine of its Context.
package software
