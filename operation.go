// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// State is the lifecycle state of an Operation.
type State uint8

// Operation states.
const (
	// StateUninitialized means no frame has been processed yet.
	StateUninitialized State = iota

	// StateActive means at least one frame has been processed and the
	// transform, projection and vertices are current.
	StateActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Operation draws one image as a placed quad into every frame it receives.
//
// Each inbound frame is answered with a new output frame of the same size
// from the FramebufferCache: cleared to transparent black, with the overlay
// drawn on top at its placement. If the image could not be loaded the
// operation keeps running and produces empty frames.
//
// NewFramebufferAvailable expects a single producer; it must not be called
// concurrently for the same Operation, nor from inside Context.Do.
type Operation struct {
	ctx       *Context
	cache     FramebufferCache
	log       *slog.Logger
	placement Placement
	imageSize Size
	placing   PlacementConfig

	mu        sync.Mutex
	texture   *Texture
	program   ProgramHandle
	state     State
	transform Matrix
	ortho     Mat4
	vertices  [8]float32
	uniforms  Uniforms
	targets   []Target
	closed    bool
}

// NewOperation builds an overlay operation for img on ctx.
//
// A failed image load is logged and leaves the operation without a
// texture; it is not returned as an error. A shader pair the device cannot
// build is.
func NewOperation(ctx *Context, cache FramebufferCache, img image.Image, opts ...Option) (*Operation, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if cache == nil {
		return nil, ErrNilCache
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	o.loader.Logger = log

	imageSize := o.imageSize
	if imageSize == (Size{}) && img != nil {
		imageSize = SizeOf(img.Bounds())
	}

	var (
		program ProgramHandle
		progErr error
	)
	if err := ctx.Do(func(dev Device) {
		program, progErr = dev.CreateProgram(OverlayShader())
	}); err != nil {
		return nil, fmt.Errorf("overlay: create program: %w", err)
	}
	if progErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, progErr)
	}

	tex, err := o.loader.Load(ctx, img)
	if err != nil {
		log.Warn("overlay: texture load failed, operation will draw nothing", "err", err)
		tex = nil
	}

	return &Operation{
		ctx:       ctx,
		cache:     cache,
		log:       log,
		placement: o.placement,
		imageSize: imageSize,
		placing:   o.placing,
		texture:   tex,
		program:   program,
		transform: Identity(),
		ortho:     Identity4(),
		uniforms:  Uniforms{},
	}, nil
}

// AddTarget registers t to receive every output frame.
func (op *Operation) AddTarget(t Target) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.targets = append(op.targets, t)
}

// RemoveAllTargets unregisters every target.
func (op *Operation) RemoveAllTargets() {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.targets = nil
}

// NewFramebufferAvailable processes one inbound frame. The reference fb
// arrives with is always dropped before returning.
func (op *Operation) NewFramebufferAvailable(fb *Framebuffer) {
	size := fb.Size()

	op.mu.Lock()
	if op.closed {
		op.mu.Unlock()
		fb.Unlock()
		return
	}
	op.ortho = Orthographic(0, float32(size.Width), 0, float32(size.Height), -1, 1)
	op.vertices = QuadVertices(op.imageSize)
	op.transform = ComputeTransform(size, op.imageSize, op.placement, op.placing)
	op.uniforms = Uniforms{
		UniformOrthographic: op.ortho,
		UniformTransform:    op.transform.Mat4(),
	}
	op.state = StateActive
	call := DrawCall{
		Program:  op.program,
		Uniforms: op.uniforms,
		Vertices: op.vertices,
	}
	tex := op.texture
	targets := slices.Clone(op.targets)
	op.mu.Unlock()

	if tex != nil {
		call.Texture = tex.Handle()
	}

	out, err := op.cache.Acquire(size)
	if err != nil {
		op.log.Warn("overlay: no output framebuffer", "size", size, "err", err)
		fb.Unlock()
		return
	}
	call.TexCoords = op.cache.TextureCoordinates(NoRotation)

	err = op.ctx.Do(func(dev Device) {
		dev.Clear(out.Handle(), Transparent)
		if call.Texture != NoTexture {
			dev.Draw(out.Handle(), &call)
		}
		if err := dev.Err(); err != nil {
			op.log.Debug("overlay: device error while drawing", "err", err)
		}
	})
	if err != nil {
		op.log.Warn("overlay: frame not drawn", "err", err)
	}
	op.log.Debug("overlay: frame", "size", size, "texture", call.Texture != NoTexture, "targets", len(targets))

	fb.Unlock()

	for range targets {
		out.Lock()
	}
	for _, t := range targets {
		t.NewFramebufferAvailable(out)
	}
	out.Unlock()
}

// Transform returns the model transform of the last frame.
func (op *Operation) Transform() Matrix {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.transform
}

// Orthographic returns the projection of the last frame.
func (op *Operation) Orthographic() Mat4 {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.ortho
}

// Vertices returns the quad vertices of the last frame.
func (op *Operation) Vertices() [8]float32 {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.vertices
}

// Uniforms returns a copy of the shader parameters of the last frame.
func (op *Operation) Uniforms() Uniforms {
	op.mu.Lock()
	defer op.mu.Unlock()
	return maps.Clone(op.uniforms)
}

// State returns the lifecycle state.
func (op *Operation) State() State {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.state
}

// HasTexture reports whether the image was loaded and is still held.
func (op *Operation) HasTexture() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.texture != nil
}

// Placement returns the anchor of the overlay.
func (op *Operation) Placement() Placement {
	return op.placement
}

// ImageSize returns the overlay size at reference scale.
func (op *Operation) ImageSize() Size {
	return op.imageSize
}

// Close releases the texture and the shader pair on the context. Frames
// received afterwards are released without output. Idempotent.
func (op *Operation) Close() error {
	op.mu.Lock()
	if op.closed {
		op.mu.Unlock()
		return nil
	}
	op.closed = true
	tex, program := op.texture, op.program
	op.texture, op.program = nil, NoProgram
	op.mu.Unlock()

	err := op.ctx.Do(func(dev Device) {
		if tex != nil {
			tex.releaseOn(dev)
		}
		if program != NoProgram {
			dev.DeleteProgram(program)
		}
	})
	if errors.Is(err, ErrContextClosed) {
		if tex != nil {
			tex.MarkCleared()
		}
		op.log.Warn("overlay: operation closed after its context", "err", err)
		return nil
	}
	return err
}
