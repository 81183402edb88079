// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"runtime"
	"sync"
)

// Texture is a GPU texture owned by a Context.
//
// The handle is deleted exactly once: by Release, by the automatic cleanup
// that runs when the Texture becomes unreachable, or never if MarkCleared
// came first. All methods are safe for concurrent use.
type Texture struct {
	res     *textureResource
	cleanup runtime.Cleanup
}

// textureResource is the state shared with the cleanup function. It must
// not point back at its Texture, or the Texture would never be collected.
type textureResource struct {
	ctx *Context

	mu       sync.Mutex
	handle   TextureHandle
	target   TextureTarget
	width    uint32
	height   uint32
	released bool
}

// loadResult is a texture whose upload has not been validated yet.
type loadResult struct {
	handle TextureHandle
	target TextureTarget
	width  uint32
	height uint32
}

func newTexture(ctx *Context, r loadResult) *Texture {
	t := &Texture{res: &textureResource{
		ctx:    ctx,
		handle: r.handle,
		target: r.target,
		width:  r.width,
		height: r.height,
	}}
	t.cleanup = runtime.AddCleanup(t, (*textureResource).release, t.res)
	return t
}

// Handle returns the device handle, or NoTexture once released.
func (t *Texture) Handle() TextureHandle {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return t.res.handle
}

// Target returns the texture target.
func (t *Texture) Target() TextureTarget {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return t.res.target
}

// Width returns the width in pixels, or 0 once released.
func (t *Texture) Width() uint32 {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return t.res.width
}

// Height returns the height in pixels, or 0 once released.
func (t *Texture) Height() uint32 {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return t.res.height
}

// Size returns the texture size in pixels.
func (t *Texture) Size() Size {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return Sz(float64(t.res.width), float64(t.res.height))
}

// IsReleased reports whether the texture has been released or cleared.
func (t *Texture) IsReleased() bool {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	return t.res.released
}

// String returns a short description for logs.
func (t *Texture) String() string {
	t.res.mu.Lock()
	defer t.res.mu.Unlock()
	if t.res.released {
		return "Texture(released)"
	}
	return fmt.Sprintf("Texture(%d, %s, %dx%d)", t.res.handle, t.res.target, t.res.width, t.res.height)
}

// MarkCleared puts the texture in the released state without deleting the
// handle. Use it when the device storage is already gone. Idempotent.
func (t *Texture) MarkCleared() {
	t.cleanup.Stop()
	t.res.mu.Lock()
	t.res.clear()
	t.res.mu.Unlock()
}

// Release deletes the texture on its Context, blocking until the delete
// completed, and marks it cleared. Calling Release again, or after
// MarkCleared, does nothing.
//
// Release must not be called from inside Context.Do; use releaseOn there.
func (t *Texture) Release() {
	t.cleanup.Stop()
	t.res.release()
}

// releaseOn is Release for callers already on the render goroutine.
func (t *Texture) releaseOn(dev Device) {
	t.cleanup.Stop()
	if h, ok := t.res.take(); ok {
		dev.DeleteTexture(h)
	}
}

// take marks the resource cleared and returns the handle that still needs
// deleting, if any.
func (r *textureResource) take() (TextureHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released || r.handle == NoTexture {
		return NoTexture, false
	}
	h := r.handle
	r.clear()
	return h, true
}

func (r *textureResource) release() {
	h, ok := r.take()
	if !ok {
		return
	}
	err := r.ctx.Do(func(dev Device) {
		dev.DeleteTexture(h)
	})
	if err != nil {
		Logger().Warn("overlay: texture released without device delete",
			"handle", h, "err", err)
	}
}

// clear zeroes the resource. Caller holds r.mu.
func (r *textureResource) clear() {
	r.released = true
	r.handle = NoTexture
	r.width = 0
	r.height = 0
}
