// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// texture is a sampled RGBA8 texture. tex and view are nil until
// TexImage2D; sampler is rebuilt after a TexParameter change.
type texture struct {
	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
	width   int
	height  int

	minFilter overlay.TextureParameterValue
	magFilter overlay.TextureParameterValue
	wrapS     overlay.TextureParameterValue
	wrapT     overlay.TextureParameterValue
}

// destroy frees the GPU objects of t.
func (t *texture) destroy(device hal.Device) {
	t.destroyStorage(device)
	t.destroySampler(device)
}

func (t *texture) destroyStorage(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width, t.height = 0, 0
}

func (t *texture) destroySampler(device hal.Device) {
	if t.sampler != nil {
		device.DestroySampler(t.sampler)
		t.sampler = nil
	}
}

// GenTexture allocates a texture handle with no storage.
func (d *Device) GenTexture() overlay.TextureHandle {
	h := overlay.TextureHandle(d.id())
	d.textures[h] = &texture{
		minFilter: overlay.Linear,
		magFilter: overlay.Linear,
		wrapS:     overlay.Repeat,
		wrapT:     overlay.Repeat,
	}
	return h
}

// BindTexture makes tex current. Binding NoTexture unbinds.
func (d *Device) BindTexture(target overlay.TextureTarget, tex overlay.TextureHandle) {
	if target != overlay.Texture2D {
		d.setErr(fmt.Errorf("%w: bind target %s", ErrInvalidValue, target))
		return
	}
	if tex != overlay.NoTexture && d.textures[tex] == nil {
		d.setErr(fmt.Errorf("%w: texture %d", ErrInvalidHandle, tex))
		return
	}
	d.bound = tex
}

func (d *Device) boundTexture(target overlay.TextureTarget) *texture {
	if target != overlay.Texture2D {
		d.setErr(fmt.Errorf("%w: target %s", ErrInvalidValue, target))
		return nil
	}
	t := d.textures[d.bound]
	if t == nil {
		d.setErr(fmt.Errorf("%w: no texture bound", ErrInvalidOperation))
	}
	return t
}

// TexParameter sets a sampling parameter of the bound texture.
func (d *Device) TexParameter(target overlay.TextureTarget, param overlay.TextureParameter, value overlay.TextureParameterValue) {
	t := d.boundTexture(target)
	if t == nil {
		return
	}
	var field *overlay.TextureParameterValue
	switch param {
	case overlay.TextureMinFilter:
		field = &t.minFilter
	case overlay.TextureMagFilter:
		field = &t.magFilter
	case overlay.TextureWrapS:
		field = &t.wrapS
	case overlay.TextureWrapT:
		field = &t.wrapT
	default:
		d.setErr(fmt.Errorf("%w: parameter %d", ErrInvalidValue, param))
		return
	}
	isFilter := param == overlay.TextureMinFilter || param == overlay.TextureMagFilter
	if isFilter != (value == overlay.Nearest || value == overlay.Linear) {
		d.setErr(fmt.Errorf("%w: value %d for parameter %d", ErrInvalidValue, value, param))
		return
	}
	if *field != value {
		*field = value
		t.destroySampler(d.device)
	}
}

// TexImage2D replaces the storage of the bound texture with pixels.
func (d *Device) TexImage2D(target overlay.TextureTarget, level, width, height int, format overlay.PixelFormat, pixels []byte) {
	t := d.boundTexture(target)
	if t == nil {
		return
	}
	if level != 0 || format != overlay.FormatRGBA8 {
		d.setErr(fmt.Errorf("%w: level %d format %d", ErrInvalidValue, level, format))
		return
	}
	if err := d.checkSize(width, height); err != nil {
		d.setErr(err)
		return
	}
	stride := width * format.BytesPerPixel()
	if len(pixels) < stride*height {
		d.setErr(fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidValue, len(pixels), width, height))
		return
	}
	t.destroyStorage(d.device)

	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "overlay_texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		d.setErr(fmt.Errorf("native: create texture: %w", err))
		return
	}
	err = d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		pixels[:stride*height],
		&hal.ImageDataLayout{BytesPerRow: uint32(stride), RowsPerImage: uint32(height)},
		&size,
	)
	if err != nil {
		d.device.DestroyTexture(tex)
		d.setErr(fmt.Errorf("native: upload texture: %w", err))
		return
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "overlay_texture_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		d.setErr(fmt.Errorf("native: create texture view: %w", err))
		return
	}
	t.tex, t.view = tex, view
	t.width, t.height = width, height
}

// IsTexture reports whether tex names a live texture.
func (d *Device) IsTexture(tex overlay.TextureHandle) bool {
	return d.textures[tex] != nil
}

// DeleteTexture frees tex. Unknown handles are ignored.
func (d *Device) DeleteTexture(tex overlay.TextureHandle) {
	t := d.textures[tex]
	if t == nil {
		return
	}
	t.destroy(d.device)
	delete(d.textures, tex)
	if d.bound == tex {
		d.bound = overlay.NoTexture
	}
}

// samplerFor returns the sampler matching the parameters of t.
func (d *Device) samplerFor(t *texture) (hal.Sampler, error) {
	if t.sampler != nil {
		return t.sampler, nil
	}
	s, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "overlay_sampler",
		AddressModeU: addressMode(t.wrapS),
		AddressModeV: addressMode(t.wrapT),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(t.magFilter),
		MinFilter:    filterMode(t.minFilter),
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create sampler: %w", err)
	}
	t.sampler = s
	return s, nil
}

func addressMode(v overlay.TextureParameterValue) gputypes.AddressMode {
	if v == overlay.Repeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}

func filterMode(v overlay.TextureParameterValue) gputypes.FilterMode {
	if v == overlay.Nearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}
