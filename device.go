// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"image"
)

// TextureHandle identifies a texture owned by a Device. NoTexture is never a
// live texture.
type TextureHandle uint32

// NoTexture is the "none" texture handle.
const NoTexture TextureHandle = 0

// FramebufferHandle identifies a render target owned by a Device.
type FramebufferHandle uint32

// NoFramebuffer is the "none" framebuffer handle.
const NoFramebuffer FramebufferHandle = 0

// VertexBufferHandle identifies a vertex buffer owned by a Device.
type VertexBufferHandle uint32

// NoVertexBuffer is the "none" vertex buffer handle.
const NoVertexBuffer VertexBufferHandle = 0

// ProgramHandle identifies a compiled shader pair owned by a Device.
type ProgramHandle uint32

// NoProgram is the "none" program handle.
const NoProgram ProgramHandle = 0

// TextureTarget is the kind of texture a handle is bound as.
type TextureTarget uint8

// Texture targets.
const (
	TextureTargetNone TextureTarget = iota
	Texture2D
)

// String returns the target name.
func (t TextureTarget) String() string {
	switch t {
	case TextureTargetNone:
		return "none"
	case Texture2D:
		return "2D"
	default:
		return fmt.Sprintf("TextureTarget(%d)", t)
	}
}

// TextureParameter names a sampling parameter of the bound texture.
type TextureParameter uint8

// Texture parameters.
const (
	TextureMinFilter TextureParameter = iota
	TextureMagFilter
	TextureWrapS
	TextureWrapT
)

// TextureParameterValue is the value of a TextureParameter.
type TextureParameterValue uint8

// Texture parameter values.
const (
	Nearest TextureParameterValue = iota
	Linear
	ClampToEdge
	Repeat
)

// PixelFormat is the layout of uploaded pixel data.
type PixelFormat uint8

// Pixel formats.
const (
	// FormatRGBA8 is 8 bits per channel, R,G,B,A byte order, premultiplied alpha.
	FormatRGBA8 PixelFormat = iota
)

// BytesPerPixel returns the size of one pixel in bytes.
func (f PixelFormat) BytesPerPixel() int {
	return 4
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Transparent is transparent black, the clear color of every overlay frame.
var Transparent = Color{}

// Uniform names consumed by the overlay shader pair.
const (
	UniformOrthographic = "orthographicMatrix"
	UniformTransform    = "transformMatrix"
)

// Uniforms maps shader parameter names to 4x4 matrices.
type Uniforms map[string]Mat4

// SetMatrix4 stores m under name.
func (u Uniforms) SetMatrix4(name string, m Mat4) {
	u[name] = m
}

// Matrix4 returns the matrix stored under name, or the identity if unset.
func (u Uniforms) Matrix4(name string) Mat4 {
	if m, ok := u[name]; ok {
		return m
	}
	return Identity4()
}

// ShaderSource describes a shader pair in WGSL.
type ShaderSource struct {
	Label         string
	WGSL          string
	VertexEntry   string
	FragmentEntry string
}

// DrawCall is a single textured-quad draw.
type DrawCall struct {
	// Program is the shader pair to bind.
	Program ProgramHandle

	// Uniforms holds the named matrices for the vertex stage.
	Uniforms Uniforms

	// Vertices are the four triangle-strip positions, x/y interleaved.
	Vertices [8]float32

	// TexCoords is the vertex buffer holding the matching texture coordinates.
	TexCoords VertexBufferHandle

	// Texture is the single sampler input.
	Texture TextureHandle
}

// Device is the graphics context capability. It is not safe for concurrent
// use: every call must happen on the render goroutine of the Context that
// owns it (see Context.Do).
//
// Texture calls follow a bind-then-modify model. Failures of calls that
// return no error are recorded and reported by the next call to Err.
type Device interface {
	// GenTexture allocates a texture handle with no storage.
	GenTexture() TextureHandle

	// BindTexture makes tex the current texture for target.
	BindTexture(target TextureTarget, tex TextureHandle)

	// TexParameter sets a sampling parameter of the bound texture.
	TexParameter(target TextureTarget, param TextureParameter, value TextureParameterValue)

	// TexImage2D uploads pixels as the given mip level of the bound texture.
	TexImage2D(target TextureTarget, level, width, height int, format PixelFormat, pixels []byte)

	// IsTexture reports whether tex names a live texture.
	IsTexture(tex TextureHandle) bool

	// DeleteTexture frees tex. Deleting NoTexture is a no-op.
	DeleteTexture(tex TextureHandle)

	// Err returns and clears the first error recorded since the last call.
	Err() error

	CreateFramebuffer(width, height int) (FramebufferHandle, error)
	DeleteFramebuffer(fb FramebufferHandle)

	CreateVertexBuffer(data []float32) (VertexBufferHandle, error)
	DeleteVertexBuffer(vb VertexBufferHandle)

	// CreateProgram compiles a shader pair.
	CreateProgram(src ShaderSource) (ProgramHandle, error)
	DeleteProgram(p ProgramHandle)

	// Clear fills the whole target with c.
	Clear(target FramebufferHandle, c Color)

	// Draw renders call into target, blending premultiplied source over
	// the existing contents.
	Draw(target FramebufferHandle, call *DrawCall)
}

// PixelReader is implemented by devices that can read a framebuffer back to
// host memory.
type PixelReader interface {
	ReadPixels(fb FramebufferHandle) (*image.RGBA, error)
}
