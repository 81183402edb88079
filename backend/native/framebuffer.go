// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// framebuffer is an RGBA8 render attachment.
type framebuffer struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
}

func (fb *framebuffer) destroy(device hal.Device) {
	device.DestroyTextureView(fb.view)
	device.DestroyTexture(fb.tex)
}

// CreateFramebuffer allocates a render target cleared to transparent.
func (d *Device) CreateFramebuffer(width, height int) (overlay.FramebufferHandle, error) {
	if err := d.checkSize(width, height); err != nil {
		return overlay.NoFramebuffer, err
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "overlay_framebuffer",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc |
			gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return overlay.NoFramebuffer, fmt.Errorf("native: create framebuffer texture: %w", err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "overlay_framebuffer_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return overlay.NoFramebuffer, fmt.Errorf("native: create framebuffer view: %w", err)
	}

	fb := &framebuffer{tex: tex, view: view, width: width, height: height}
	if err := d.clear(fb, overlay.Transparent); err != nil {
		fb.destroy(d.device)
		return overlay.NoFramebuffer, err
	}
	h := overlay.FramebufferHandle(d.id())
	d.framebuffers[h] = fb
	return h, nil
}

// DeleteFramebuffer frees fb.
func (d *Device) DeleteFramebuffer(h overlay.FramebufferHandle) {
	fb := d.framebuffers[h]
	if fb == nil {
		return
	}
	fb.destroy(d.device)
	delete(d.framebuffers, h)
}

// Clear fills target with c.
func (d *Device) Clear(target overlay.FramebufferHandle, c overlay.Color) {
	fb := d.framebuffers[target]
	if fb == nil {
		d.setErr(fmt.Errorf("%w: framebuffer %d", ErrInvalidHandle, target))
		return
	}
	if err := d.clear(fb, c); err != nil {
		d.setErr(err)
	}
}

func (d *Device) clear(fb *framebuffer, c overlay.Color) error {
	a := float64(c.A)
	return d.submit("overlay_clear", func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "overlay_clear_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{
					View:    fb.view,
					LoadOp:  gputypes.LoadOpClear,
					StoreOp: gputypes.StoreOpStore,
					ClearValue: gputypes.Color{
						R: float64(c.R) * a,
						G: float64(c.G) * a,
						B: float64(c.B) * a,
						A: a,
					},
				},
			},
		})
		rp.End()
	})
}

// submit records one command buffer, submits it and waits for the queue
// to drain.
func (d *Device) submit(label string, record func(enc hal.CommandEncoder)) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("native: begin encoding: %w", err)
	}

	record(encoder)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("native: wait idle: %w", err)
	}
	return nil
}
