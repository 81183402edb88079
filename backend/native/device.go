// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// Device is an overlay.Device backed by a HAL device and queue.
type Device struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance // set when the Device opened its own GPU
	owned    bool
	adapter  string
	log      *slog.Logger
	limits   gputypes.Limits

	next         uint32
	textures     map[overlay.TextureHandle]*texture
	bound        overlay.TextureHandle
	framebuffers map[overlay.FramebufferHandle]*framebuffer
	buffers      map[overlay.VertexBufferHandle]*vertexBuffer
	programs     map[overlay.ProgramHandle]*program

	// Scratch buffers rewritten by every Draw.
	uniforms  hal.Buffer
	positions hal.Buffer

	err    error
	closed bool
}

var (
	_ overlay.Device      = (*Device)(nil)
	_ overlay.PixelReader = (*Device)(nil)
)

// Option configures a Device.
type Option func(*Device)

// WithLogger sets the device logger. Default: overlay.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

// WithLimits sets the limits textures and framebuffers are checked
// against. Default: gputypes.DefaultLimits().
func WithLimits(l gputypes.Limits) Option {
	return func(d *Device) {
		d.limits = l
	}
}

// NewDevice wraps a HAL device and queue owned by the caller. Close
// releases the overlay objects but leaves the device alive.
func NewDevice(device hal.Device, queue hal.Queue, opts ...Option) *Device {
	d := &Device{
		device:       device,
		queue:        queue,
		log:          overlay.Logger(),
		limits:       gputypes.DefaultLimits(),
		textures:     make(map[overlay.TextureHandle]*texture),
		framebuffers: make(map[overlay.FramebufferHandle]*framebuffer),
		buffers:      make(map[overlay.VertexBufferHandle]*vertexBuffer),
		programs:     make(map[overlay.ProgramHandle]*program),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromProvider shares the GPU of a host application. The provider must
// also implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	d := NewDevice(device, queue, opts...)
	d.adapter = provider.AdapterInfo().Name
	return d, nil
}

// Open creates a device on the first discrete or integrated adapter of the
// given backend, or on the first adapter if there is neither. The backend
// package must be imported for its side effect of registering itself.
func Open(variant gputypes.Backend, opts ...Option) (*Device, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device: %w", err)
	}

	d := NewDevice(openDev.Device, openDev.Queue, opts...)
	d.instance = instance
	d.owned = true
	d.adapter = selected.Info.Name
	d.log.Info("native: device opened", "adapter", d.adapter, "backend", variant)
	return d, nil
}

// Adapter returns the adapter name, if known.
func (d *Device) Adapter() string { return d.adapter }

func (d *Device) setErr(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

// Err returns and clears the first recorded error.
func (d *Device) Err() error {
	err := d.err
	d.err = nil
	return err
}

func (d *Device) checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidValue, width, height)
	}
	if limit := int(d.limits.MaxTextureDimension2D); limit > 0 && (width > limit || height > limit) {
		return fmt.Errorf("%w: size %dx%d exceeds %d", ErrInvalidValue, width, height, limit)
	}
	return nil
}

// Close destroys every object created through the Device and, if the
// Device opened its own GPU, the GPU device and instance. Close is
// idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if err := d.device.WaitIdle(); err != nil {
		d.log.Warn("native: wait idle on close", "err", err)
	}

	for h, t := range d.textures {
		t.destroy(d.device)
		delete(d.textures, h)
	}
	for h, fb := range d.framebuffers {
		fb.destroy(d.device)
		delete(d.framebuffers, h)
	}
	for h, vb := range d.buffers {
		d.device.DestroyBuffer(vb.buf)
		delete(d.buffers, h)
	}
	for h, p := range d.programs {
		p.destroy(d.device)
		delete(d.programs, h)
	}
	if d.uniforms != nil {
		d.device.DestroyBuffer(d.uniforms)
		d.uniforms = nil
	}
	if d.positions != nil {
		d.device.DestroyBuffer(d.positions)
		d.positions = nil
	}

	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.log.Debug("native: device closed", "owned", d.owned)
}

// Stats counts live device objects.
type Stats struct {
	Textures      int
	Framebuffers  int
	VertexBuffers int
	Programs      int
}

// Stats returns the number of live objects per kind.
func (d *Device) Stats() Stats {
	return Stats{
		Textures:      len(d.textures),
		Framebuffers:  len(d.framebuffers),
		VertexBuffers: len(d.buffers),
		Programs:      len(d.programs),
	}
}
