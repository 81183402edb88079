// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"sync/atomic"
)

// FramebufferOwner takes back a framebuffer when its last reference is
// dropped.
type FramebufferOwner interface {
	ReturnFramebuffer(fb *Framebuffer)
}

// Framebuffer is a reference-counted render target passed between
// pipeline stages.
//
// A framebuffer handed to a Target arrives with one reference held for that
// target; the target calls Unlock exactly once when it no longer needs it.
type Framebuffer struct {
	handle FramebufferHandle
	width  int
	height int
	owner  FramebufferOwner
	refs   atomic.Int32
}

// NewFramebuffer wraps handle with a single reference. owner may be nil.
func NewFramebuffer(handle FramebufferHandle, width, height int, owner FramebufferOwner) *Framebuffer {
	fb := &Framebuffer{handle: handle, width: width, height: height, owner: owner}
	fb.refs.Store(1)
	return fb
}

// Handle returns the device handle.
func (fb *Framebuffer) Handle() FramebufferHandle { return fb.handle }

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Size returns the framebuffer size.
func (fb *Framebuffer) Size() Size {
	return Sz(float64(fb.width), float64(fb.height))
}

// Lock adds a reference.
func (fb *Framebuffer) Lock() {
	fb.refs.Add(1)
}

// Unlock drops a reference. Dropping the last one returns the framebuffer
// to its owner.
func (fb *Framebuffer) Unlock() {
	n := fb.refs.Add(-1)
	switch {
	case n == 0:
		if fb.owner != nil {
			fb.owner.ReturnFramebuffer(fb)
		}
	case n < 0:
		fb.refs.Store(0)
		Logger().Warn("overlay: framebuffer unlocked too many times", "handle", fb.handle)
	}
}

// Reset restores a single reference. Owners call it when handing out a
// recycled framebuffer.
func (fb *Framebuffer) Reset() {
	fb.refs.Store(1)
}

// RefCount returns the current number of references.
func (fb *Framebuffer) RefCount() int {
	return int(fb.refs.Load())
}

// String returns a short description for logs.
func (fb *Framebuffer) String() string {
	return fmt.Sprintf("Framebuffer(%d, %dx%d, refs=%d)", fb.handle, fb.width, fb.height, fb.RefCount())
}

// FramebufferCache hands out output framebuffers and shared vertex buffers.
// Implementations must be safe to call from the render goroutine.
type FramebufferCache interface {
	// Acquire returns a framebuffer of the given size holding one reference.
	Acquire(size Size) (*Framebuffer, error)

	// TextureCoordinates returns a vertex buffer holding the texture
	// coordinates for o.
	TextureCoordinates(o Orientation) VertexBufferHandle
}

// Target consumes framebuffers produced by an upstream stage.
type Target interface {
	NewFramebufferAvailable(fb *Framebuffer)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(fb *Framebuffer)

// NewFramebufferAvailable calls f(fb).
func (f TargetFunc) NewFramebufferAvailable(fb *Framebuffer) { f(fb) }
