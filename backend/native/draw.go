// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// uniformSize is two column-major mat4x4<f32>.
const uniformSize = 2 * 16 * 4

// vertexBuffer holds vec2<f32> data.
type vertexBuffer struct {
	buf   hal.Buffer
	count int
}

// CreateVertexBuffer uploads data to a new vertex buffer.
func (d *Device) CreateVertexBuffer(data []float32) (overlay.VertexBufferHandle, error) {
	if len(data) == 0 {
		return overlay.NoVertexBuffer, fmt.Errorf("%w: empty vertex buffer", ErrInvalidValue)
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "overlay_vertex_buffer",
		Size:  uint64(len(data) * 4),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return overlay.NoVertexBuffer, fmt.Errorf("native: create vertex buffer: %w", err)
	}
	if err := d.queue.WriteBuffer(buf, 0, float32Bytes(data)); err != nil {
		d.device.DestroyBuffer(buf)
		return overlay.NoVertexBuffer, fmt.Errorf("native: write vertex buffer: %w", err)
	}
	h := overlay.VertexBufferHandle(d.id())
	d.buffers[h] = &vertexBuffer{buf: buf, count: len(data)}
	return h, nil
}

// DeleteVertexBuffer frees vb.
func (d *Device) DeleteVertexBuffer(h overlay.VertexBufferHandle) {
	vb := d.buffers[h]
	if vb == nil {
		return
	}
	d.device.DestroyBuffer(vb.buf)
	delete(d.buffers, h)
}

// ensureScratch creates the per-draw uniform and position buffers.
func (d *Device) ensureScratch() error {
	if d.uniforms == nil {
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "overlay_uniforms",
			Size:  uniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("native: create uniform buffer: %w", err)
		}
		d.uniforms = buf
	}
	if d.positions == nil {
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "overlay_positions",
			Size:  8 * 4,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("native: create position buffer: %w", err)
		}
		d.positions = buf
	}
	return nil
}

// Draw renders call into target as a four-vertex triangle strip.
func (d *Device) Draw(target overlay.FramebufferHandle, call *overlay.DrawCall) {
	if err := d.draw(target, call); err != nil {
		d.setErr(err)
	}
}

func (d *Device) draw(target overlay.FramebufferHandle, call *overlay.DrawCall) error {
	fb := d.framebuffers[target]
	if fb == nil {
		return fmt.Errorf("%w: framebuffer %d", ErrInvalidHandle, target)
	}
	p := d.programs[call.Program]
	if p == nil {
		return fmt.Errorf("%w: program %d", ErrInvalidHandle, call.Program)
	}
	t := d.textures[call.Texture]
	if t == nil || t.view == nil {
		return fmt.Errorf("%w: texture %d", ErrInvalidHandle, call.Texture)
	}
	uv := d.buffers[call.TexCoords]
	if uv == nil || uv.count < 8 {
		return fmt.Errorf("%w: texture coordinates %d", ErrInvalidHandle, call.TexCoords)
	}
	sampler, err := d.samplerFor(t)
	if err != nil {
		return err
	}
	if err := d.ensureScratch(); err != nil {
		return err
	}

	ortho := call.Uniforms.Matrix4(overlay.UniformOrthographic)
	transform := call.Uniforms.Matrix4(overlay.UniformTransform)
	if err := d.queue.WriteBuffer(d.uniforms, 0, float32Bytes(ortho[:], transform[:])); err != nil {
		return fmt.Errorf("native: write uniforms: %w", err)
	}
	if err := d.queue.WriteBuffer(d.positions, 0, float32Bytes(call.Vertices[:])); err != nil {
		return fmt.Errorf("native: write positions: %w", err)
	}

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  p.label + "_bind_group",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: overlay.BindingUniforms, Resource: gputypes.BufferBinding{
				Buffer: d.uniforms.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: overlay.BindingTexture, Resource: gputypes.TextureViewBinding{
				TextureView: t.view.NativeHandle(),
			}},
			{Binding: overlay.BindingSampler, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(group)

	return d.submit("overlay_draw", func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "overlay_draw_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{
					View:    fb.view,
					LoadOp:  gputypes.LoadOpLoad,
					StoreOp: gputypes.StoreOpStore,
				},
			},
		})
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, group, nil)
		rp.SetVertexBuffer(0, d.positions, 0)
		rp.SetVertexBuffer(1, uv.buf, 0)
		rp.Draw(4, 1, 0, 0)
		rp.End()
	})
}

// float32Bytes encodes the concatenation of vs as little-endian bytes.
func float32Bytes(vs ...[]float32) []byte {
	n := 0
	for _, v := range vs {
		n += len(v)
	}
	out := make([]byte, 0, n*4)
	for _, v := range vs {
		for _, f := range v {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
	}
	return out
}
