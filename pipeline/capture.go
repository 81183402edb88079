// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"image"
	"sync"

	"github.com/gogpu/overlay"
)

// Capture is a Target that copies every frame it receives into host
// memory. The device must implement overlay.PixelReader.
type Capture struct {
	ctx *overlay.Context

	mu     sync.Mutex
	last   *image.RGBA
	err    error
	frames int
}

// NewCapture creates a capture reading through ctx.
func NewCapture(ctx *overlay.Context) *Capture {
	return &Capture{ctx: ctx}
}

// NewFramebufferAvailable reads fb back and drops its reference.
func (c *Capture) NewFramebufferAvailable(fb *overlay.Framebuffer) {
	defer fb.Unlock()

	var (
		img     *image.RGBA
		readErr error
	)
	err := c.ctx.Do(func(dev overlay.Device) {
		r, ok := dev.(overlay.PixelReader)
		if !ok {
			readErr = ErrNoReadback
			return
		}
		img, readErr = r.ReadPixels(fb.Handle())
	})
	if err == nil {
		err = readErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames++
	if err != nil {
		c.err = err
		return
	}
	c.last, c.err = img, nil
}

// Last returns the most recent frame, or the error of the most recent
// readback.
func (c *Capture) Last() (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.last == nil {
		return nil, ErrNoFrame
	}
	return c.last, nil
}

// Frames returns the number of frames received.
func (c *Capture) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}
