// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native implements overlay.Device on the gogpu/wgpu hardware
// abstraction layer.
//
// Textures are RGBA8 GPU textures with a sampler built from their
// TexParameter state. Framebuffers are RGBA8 render attachments that can
// be read back. CreateProgram builds a render pipeline for the overlay
// shader pair: uniforms at binding 0, the texture at binding 1 and its
// sampler at binding 2 of group 0, positions in vertex buffer 0 and texture
// coordinates in vertex buffer 1, drawn as a four-vertex triangle strip
// with premultiplied alpha blending.
//
// A Device either opens its own GPU:
//
//	import _ "github.com/gogpu/wgpu/hal/vulkan"
//
//	dev, err := native.Open(gputypes.BackendVulkan)
//	if err != nil {
//		return err
//	}
//	defer dev.Close()
//
// or shares one owned by the host application through FromProvider or
// NewDevice. Every call except Close must come from the render goroutine of
// the overlay.Context that owns the Device.
package native
