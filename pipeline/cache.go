// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/internal/cache"
)

// key identifies interchangeable framebuffers.
type key struct {
	width, height int
}

// Cache recycles framebuffers by size and owns one texture coordinate
// buffer per orientation.
//
// Framebuffers whose last reference is dropped return to the cache. Idle
// framebuffers beyond the capacity are deleted on the next call that runs
// on the render goroutine (Acquire, Flush, Purge or Close), since returns
// may happen on any goroutine.
//
// Cache implements overlay.FramebufferCache and overlay.FramebufferOwner.
// Acquire, Flush, Purge and Close submit work to the Context and must not
// be called from inside Context.Do.
type Cache struct {
	ctx  *overlay.Context
	log  *slog.Logger
	idle *cache.Pool[key, *overlay.Framebuffer]

	coords []overlay.VertexBufferHandle

	mu      sync.Mutex
	pending []overlay.FramebufferHandle
	closed  bool

	created atomic.Uint64
	deleted atomic.Uint64
}

var (
	_ overlay.FramebufferCache = (*Cache)(nil)
	_ overlay.FramebufferOwner = (*Cache)(nil)
)

// NewCache creates a cache on ctx and uploads the texture coordinates of
// every orientation.
func NewCache(ctx *overlay.Context, opts ...Option) (*Cache, error) {
	if ctx == nil {
		return nil, overlay.ErrNilContext
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = overlay.Logger()
	}

	c := &Cache{ctx: ctx, log: log}
	c.idle = cache.NewPool(o.capacity, c.evict)

	orientations := overlay.Orientations()
	c.coords = make([]overlay.VertexBufferHandle, len(orientations))
	var createErr error
	err := ctx.Do(func(dev overlay.Device) {
		for _, orient := range orientations {
			uv := orient.TextureCoordinates()
			vb, err := dev.CreateVertexBuffer(uv[:])
			if err != nil {
				createErr = fmt.Errorf("pipeline: texture coordinates %s: %w", orient, err)
				break
			}
			c.coords[orient] = vb
		}
		if createErr != nil {
			c.deleteCoords(dev)
		}
	})
	if err == nil {
		err = createErr
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Acquire returns a framebuffer of size holding one reference, reusing an
// idle one when possible. New framebuffers are cleared to transparent by
// the device; reused ones keep their previous contents.
func (c *Cache) Acquire(size overlay.Size) (*overlay.Framebuffer, error) {
	k, err := keyOf(size)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	if fb, ok := c.idle.Take(k); ok {
		fb.Reset()
		return fb, nil
	}

	var (
		h         overlay.FramebufferHandle
		createErr error
	)
	pending := c.takePending()
	err = c.ctx.Do(func(dev overlay.Device) {
		c.deleteFramebuffers(dev, pending)
		h, createErr = dev.CreateFramebuffer(k.width, k.height)
	})
	if err == nil {
		err = createErr
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: create framebuffer %dx%d: %w", k.width, k.height, err)
	}
	c.created.Add(1)
	c.log.Debug("pipeline: framebuffer created", "handle", h, "width", k.width, "height", k.height)
	return overlay.NewFramebuffer(h, k.width, k.height, c), nil
}

// TextureCoordinates returns the shared buffer for o. Unknown orientations
// get the NoRotation buffer.
func (c *Cache) TextureCoordinates(o overlay.Orientation) overlay.VertexBufferHandle {
	if int(o) >= len(c.coords) {
		o = overlay.NoRotation
	}
	return c.coords[o]
}

// ReturnFramebuffer takes back fb once its last reference is dropped.
// It is safe to call from any goroutine, including the render goroutine.
func (c *Cache) ReturnFramebuffer(fb *overlay.Framebuffer) {
	c.mu.Lock()
	if c.closed {
		c.pending = append(c.pending, fb.Handle())
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.idle.Put(key{fb.Width(), fb.Height()}, fb)

	// Close may have drained the pool between the check and Put.
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		c.idle.Drain(c.evict)
	}
}

// evict queues an idle framebuffer pushed out of the pool for deletion.
func (c *Cache) evict(_ key, fb *overlay.Framebuffer) {
	c.mu.Lock()
	c.pending = append(c.pending, fb.Handle())
	c.mu.Unlock()
}

func (c *Cache) takePending() []overlay.FramebufferHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = nil
	return p
}

func (c *Cache) deleteFramebuffers(dev overlay.Device, handles []overlay.FramebufferHandle) {
	for _, h := range handles {
		dev.DeleteFramebuffer(h)
	}
	c.deleted.Add(uint64(len(handles)))
}

func (c *Cache) deleteCoords(dev overlay.Device) {
	for i, vb := range c.coords {
		if vb != overlay.NoVertexBuffer {
			dev.DeleteVertexBuffer(vb)
			c.coords[i] = overlay.NoVertexBuffer
		}
	}
}

// Flush deletes framebuffers evicted since the last call.
func (c *Cache) Flush() error {
	pending := c.takePending()
	if len(pending) == 0 {
		return nil
	}
	return c.ctx.Do(func(dev overlay.Device) {
		c.deleteFramebuffers(dev, pending)
	})
}

// Purge deletes every idle framebuffer.
func (c *Cache) Purge() error {
	c.idle.Drain(c.evict)
	return c.Flush()
}

// Close deletes every idle framebuffer and the texture coordinate buffers.
// Framebuffers still referenced are deleted by the next Flush after they
// are returned. Close is idempotent.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.idle.Drain(c.evict)
	pending := c.takePending()
	err := c.ctx.Do(func(dev overlay.Device) {
		c.deleteFramebuffers(dev, pending)
		c.deleteCoords(dev)
	})
	if errors.Is(err, overlay.ErrContextClosed) {
		c.log.Warn("pipeline: cache closed after its context", "framebuffers", len(pending))
		return nil
	}
	return err
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	s := c.idle.Stats()
	c.mu.Lock()
	pending := len(c.pending)
	c.mu.Unlock()
	return Stats{
		Idle:     s.Len,
		Pending:  pending,
		Capacity: s.Capacity,
		Reused:   s.Hits,
		Created:  c.created.Load(),
		Deleted:  c.deleted.Load(),
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Idle is the number of framebuffers waiting for reuse.
	Idle int
	// Pending is the number of evicted framebuffers not yet deleted.
	Pending int
	// Capacity is the idle capacity (0 = unlimited).
	Capacity int
	// Reused counts Acquire calls served from the idle set.
	Reused uint64
	// Created counts framebuffers created on the device.
	Created uint64
	// Deleted counts framebuffers deleted on the device.
	Deleted uint64
}

func keyOf(size overlay.Size) (key, error) {
	w, h := size.Width, size.Height
	if w < 1 || h < 1 || w != math.Trunc(w) || h != math.Trunc(h) || w > math.MaxInt32 || h > math.MaxInt32 {
		return key{}, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return key{int(w), int(h)}, nil
}
