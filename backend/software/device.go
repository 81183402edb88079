// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/overlay"
)

// texture is a 2D texture with its sampling state.
type texture struct {
	img       *image.RGBA // nil until TexImage2D
	minFilter overlay.TextureParameterValue
	magFilter overlay.TextureParameterValue
	wrapS     overlay.TextureParameterValue
	wrapT     overlay.TextureParameterValue
}

// program is a validated shader pair.
type program struct {
	src   overlay.ShaderSource
	spirv []byte
}

// Device is a CPU overlay.Device.
type Device struct {
	opts options
	log  *slog.Logger

	next         uint32
	textures     map[overlay.TextureHandle]*texture
	bound        overlay.TextureHandle
	framebuffers map[overlay.FramebufferHandle]*image.RGBA
	buffers      map[overlay.VertexBufferHandle][]float32
	programs     map[overlay.ProgramHandle]*program

	err error
}

var (
	_ overlay.Device      = (*Device)(nil)
	_ overlay.PixelReader = (*Device)(nil)
)

// New creates a software device.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = overlay.Logger()
	}
	return &Device{
		opts:         o,
		log:          log,
		textures:     make(map[overlay.TextureHandle]*texture),
		framebuffers: make(map[overlay.FramebufferHandle]*image.RGBA),
		buffers:      make(map[overlay.VertexBufferHandle][]float32),
		programs:     make(map[overlay.ProgramHandle]*program),
	}
}

// setErr records err unless an earlier error is still pending.
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
	switch param {
	case overlay.TextureMinFilter, overlay.TextureMagFilter:
		if value != overlay.Nearest && value != overlay.Linear {
			d.setErr(fmt.Errorf("%w: filter %d", ErrInvalidValue, value))
			return
		}
		if param == overlay.TextureMinFilter {
			t.minFilter = value
		} else {
			t.magFilter = value
		}
	case overlay.TextureWrapS, overlay.TextureWrapT:
		if value != overlay.ClampToEdge && value != overlay.Repeat {
			d.setErr(fmt.Errorf("%w: wrap mode %d", ErrInvalidValue, value))
			return
		}
		if param == overlay.TextureWrapS {
			t.wrapS = value
		} else {
			t.wrapT = value
		}
	default:
		d.setErr(fmt.Errorf("%w: parameter %d", ErrInvalidValue, param))
	}
}

// TexImage2D copies pixels into the bound texture. Only level 0 is stored.
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
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels[:stride*height])
	t.img = img
}

func (d *Device) checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidValue, width, height)
	}
	if limit := int(d.opts.maxTextureDimension); limit > 0 && (width > limit || height > limit) {
		return fmt.Errorf("%w: size %dx%d exceeds %d", ErrOutOfMemory, width, height, limit)
	}
	return nil
}

// IsTexture reports whether tex names a live texture.
func (d *Device) IsTexture(tex overlay.TextureHandle) bool {
	return d.textures[tex] != nil
}

// DeleteTexture frees tex. Unknown handles are ignored.
func (d *Device) DeleteTexture(tex overlay.TextureHandle) {
	delete(d.textures, tex)
	if d.bound == tex {
		d.bound = overlay.NoTexture
	}
}

// CreateFramebuffer allocates a transparent render target.
func (d *Device) CreateFramebuffer(width, height int) (overlay.FramebufferHandle, error) {
	if err := d.checkSize(width, height); err != nil {
		return overlay.NoFramebuffer, err
	}
	h := overlay.FramebufferHandle(d.id())
	d.framebuffers[h] = image.NewRGBA(image.Rect(0, 0, width, height))
	return h, nil
}

// DeleteFramebuffer frees fb.
func (d *Device) DeleteFramebuffer(fb overlay.FramebufferHandle) {
	delete(d.framebuffers, fb)
}

// CreateVertexBuffer stores a copy of data.
func (d *Device) CreateVertexBuffer(data []float32) (overlay.VertexBufferHandle, error) {
	if len(data) == 0 {
		return overlay.NoVertexBuffer, fmt.Errorf("%w: empty vertex buffer", ErrInvalidValue)
	}
	h := overlay.VertexBufferHandle(d.id())
	d.buffers[h] = append([]float32(nil), data...)
	return h, nil
}

// DeleteVertexBuffer frees vb.
func (d *Device) DeleteVertexBuffer(vb overlay.VertexBufferHandle) {
	delete(d.buffers, vb)
}

// CreateProgram validates src and stores it. With validation enabled the
// WGSL is compiled to SPIR-V with naga.
func (d *Device) CreateProgram(src overlay.ShaderSource) (overlay.ProgramHandle, error) {
	for _, entry := range []string{src.VertexEntry, src.FragmentEntry} {
		if entry == "" || !strings.Contains(src.WGSL, "fn "+entry+"(") {
			return overlay.NoProgram, fmt.Errorf("software: program %q: entry point %q not found", src.Label, entry)
		}
	}
	p := &program{src: src}
	if d.opts.validateShaders {
		spirv, err := naga.Compile(src.WGSL)
		if err != nil {
			return overlay.NoProgram, fmt.Errorf("software: program %q: %w", src.Label, err)
		}
		p.spirv = spirv
	}
	h := overlay.ProgramHandle(d.id())
	d.programs[h] = p
	d.log.Debug("software: program created", "label", src.Label, "spirv_bytes", len(p.spirv))
	return h, nil
}

// DeleteProgram frees p.
func (d *Device) DeleteProgram(p overlay.ProgramHandle) {
	delete(d.programs, p)
}

// Clear fills target with c, premultiplied.
func (d *Device) Clear(target overlay.FramebufferHandle, c overlay.Color) {
	fb := d.framebuffers[target]
	if fb == nil {
		d.setErr(fmt.Errorf("%w: framebuffer %d", ErrInvalidHandle, target))
		return
	}
	px := premultiply(c)
	for i := 0; i < len(fb.Pix); i += 4 {
		copy(fb.Pix[i:i+4], px[:])
	}
}

// Draw renders call into target.
func (d *Device) Draw(target overlay.FramebufferHandle, call *overlay.DrawCall) {
	fb := d.framebuffers[target]
	if fb == nil {
		d.setErr(fmt.Errorf("%w: framebuffer %d", ErrInvalidHandle, target))
		return
	}
	if d.programs[call.Program] == nil {
		d.setErr(fmt.Errorf("%w: program %d", ErrInvalidHandle, call.Program))
		return
	}
	tex := d.textures[call.Texture]
	if tex == nil || tex.img == nil {
		d.setErr(fmt.Errorf("%w: texture %d", ErrInvalidHandle, call.Texture))
		return
	}
	uv := d.buffers[call.TexCoords]
	if len(uv) < 8 {
		d.setErr(fmt.Errorf("%w: texture coordinates %d", ErrInvalidHandle, call.TexCoords))
		return
	}

	mvp := call.Uniforms.Matrix4(overlay.UniformOrthographic).
		Mul(call.Uniforms.Matrix4(overlay.UniformTransform))
	q := quad{}
	for i := range 4 {
		x, y, w := mvp.Apply(call.Vertices[2*i], call.Vertices[2*i+1])
		if w == 0 {
			d.setErr(fmt.Errorf("%w: degenerate vertex", ErrInvalidValue))
			return
		}
		q.pos[i] = toPixel(x/w, y/w, fb.Rect.Dx(), fb.Rect.Dy())
		q.uv[i] = [2]float64{float64(uv[2*i]), float64(uv[2*i+1])}
	}
	n := rasterQuad(fb, tex, &q)
	d.log.Debug("software: draw", "target", target, "pixels", n)
}

// ReadPixels returns a copy of fb.
func (d *Device) ReadPixels(fb overlay.FramebufferHandle) (*image.RGBA, error) {
	img := d.framebuffers[fb]
	if img == nil {
		return nil, fmt.Errorf("%w: framebuffer %d", ErrInvalidHandle, fb)
	}
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out, nil
}

// Close frees every object created through the device.
func (d *Device) Close() {
	clear(d.textures)
	clear(d.framebuffers)
	clear(d.buffers)
	clear(d.programs)
	d.bound = overlay.NoTexture
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

// Stats counts live device objects.
type Stats struct {
	Textures      int
	Framebuffers  int
	VertexBuffers int
	Programs      int
}
