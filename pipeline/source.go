// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"sync"

	"github.com/gogpu/overlay"
)

// Source produces frames of a fixed size filled with a solid color.
type Source struct {
	ctx        *overlay.Context
	cache      overlay.FramebufferCache
	size       overlay.Size
	background overlay.Color

	mu      sync.Mutex
	targets []overlay.Target
}

// NewSource creates a source of transparent frames of the given size.
func NewSource(ctx *overlay.Context, cache overlay.FramebufferCache, size overlay.Size) *Source {
	return &Source{ctx: ctx, cache: cache, size: size, background: overlay.Transparent}
}

// SetBackground sets the color frames are cleared to.
func (s *Source) SetBackground(c overlay.Color) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
}

// Size returns the frame size.
func (s *Source) Size() overlay.Size { return s.size }

// AddTarget appends t to the targets receiving each frame.
func (s *Source) AddTarget(t overlay.Target) {
	s.mu.Lock()
	s.targets = append(s.targets, t)
	s.mu.Unlock()
}

// Push renders one frame and hands it to every target. Each target
// receives its own reference.
func (s *Source) Push() error {
	s.mu.Lock()
	bg := s.background
	targets := append([]overlay.Target(nil), s.targets...)
	s.mu.Unlock()

	fb, err := s.cache.Acquire(s.size)
	if err != nil {
		return err
	}
	if err := s.ctx.Do(func(dev overlay.Device) {
		dev.Clear(fb.Handle(), bg)
	}); err != nil {
		fb.Unlock()
		return fmt.Errorf("pipeline: clear frame: %w", err)
	}

	for range targets {
		fb.Lock()
	}
	for _, t := range targets {
		t.NewFramebufferAvailable(fb)
	}
	fb.Unlock()
	return nil
}
