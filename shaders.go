// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	_ "embed"
)

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

// Shader entry points of the overlay shader pair.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Bind group layout of the overlay shader pair (group 0).
const (
	BindingUniforms = 0
	BindingTexture  = 1
	BindingSampler  = 2
)

// OverlayShader returns the fixed shader pair every overlay operation draws
// with. The vertex stage computes orthographicMatrix * transformMatrix *
// position; the fragment stage samples the texture unmodified.
func OverlayShader() ShaderSource {
	return ShaderSource{
		Label:         "overlay",
		WGSL:          overlayShaderSource,
		VertexEntry:   VertexEntryPoint,
		FragmentEntry: FragmentEntryPoint,
	}
}
