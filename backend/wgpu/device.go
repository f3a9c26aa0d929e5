// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/glx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type buffer struct {
	raw   hal.Buffer
	size  uint64
	usage glx.BufferUsage
}

type texture struct {
	raw           hal.Texture
	view          hal.TextureView
	sampler       hal.Sampler
	width, height int
	params        map[glx.TextureParam]glx.TextureValue
}

type framebuffer struct {
	viewport [4]int
}

// Device implements glx.Device over a HAL device and queue.
//
// Handles index per-type tables of HAL objects. Buffers and textures are
// allocated when their data is specified, since HAL objects have a fixed
// size. Device is safe for concurrent use.
type Device struct {
	mu       sync.Mutex
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	owned    bool
	nextID   uint32
	err      error

	shaders      map[glx.Shader]*shader
	programs     map[glx.Program]*program
	buffers      map[glx.Buffer]*buffer
	textures     map[glx.Texture]*texture
	framebuffers map[glx.Framebuffer]*framebuffer

	bound    map[glx.BufferTarget]glx.Buffer
	boundTex glx.Texture
	boundFB  glx.Framebuffer
	viewport [4]int
}

// NewDevice wraps an open HAL device. The caller keeps ownership of device
// and queue; Close releases only the objects created through Device.
func NewDevice(device hal.Device, queue hal.Queue) *Device {
	return newDevice(device, queue)
}

func newDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{
		device:       device,
		queue:        queue,
		shaders:      make(map[glx.Shader]*shader),
		programs:     make(map[glx.Program]*program),
		buffers:      make(map[glx.Buffer]*buffer),
		textures:     make(map[glx.Texture]*texture),
		framebuffers: make(map[glx.Framebuffer]*framebuffer),
		bound:        make(map[glx.BufferTarget]glx.Buffer),
	}
}

// newID issues the next handle. 0 is never issued. mu must be held.
func (d *Device) newID() uint32 {
	d.nextID++
	return d.nextID
}

// fail records err for Err and logs it. mu must be held.
func (d *Device) fail(err error) {
	glx.Logger().Warn("wgpu: device call failed", "err", err)
	if d.err == nil {
		d.err = err
	}
}

// Err returns and clears the first error recorded since the last call,
// in the manner of glGetError.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.err
	d.err = nil
	return err
}

// HAL returns the underlying device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// Close destroys every object created through d. Devices opened by a
// Surface are destroyed along with their instance.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for p, pr := range d.programs {
		d.releaseModules(pr)
		delete(d.programs, p)
	}
	for b, buf := range d.buffers {
		if buf.raw != nil {
			d.device.DestroyBuffer(buf.raw)
		}
		delete(d.buffers, b)
	}
	for t, tex := range d.textures {
		d.releaseTexture(tex)
		delete(d.textures, t)
	}
	clear(d.shaders)
	clear(d.framebuffers)
	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
		d.owned = false
	}
}

func (d *Device) CreateBuffer() glx.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := glx.Buffer(d.newID())
	d.buffers[b] = &buffer{}
	return b
}

func (d *Device) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bound[target] = b
}

// BufferData replaces the bound buffer's storage with a HAL buffer holding
// data. The size is rounded up to a multiple of 4 bytes, as queue writes
// require.
func (d *Device) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := d.buffers[d.bound[target]]
	if buf == nil {
		d.fail(fmt.Errorf("%w: %s", ErrNoBuffer, target))
		return
	}
	if buf.raw != nil {
		d.device.DestroyBuffer(buf.raw)
		buf.raw, buf.size = nil, 0
	}

	size := alignUp(uint64(len(data)), 4)
	if size == 0 {
		size = 4
	}
	raw, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("glx_%s", target),
		Size:  size,
		Usage: bufferUsage(target),
	})
	if err != nil {
		d.fail(fmt.Errorf("create buffer: %w", err))
		return
	}
	if len(data) > 0 {
		padded := data
		if uint64(len(data)) != size {
			padded = make([]byte, size)
			copy(padded, data)
		}
		d.queue.WriteBuffer(raw, 0, padded)
	}
	buf.raw, buf.size, buf.usage = raw, size, usage
}

func bufferUsage(target glx.BufferTarget) gputypes.BufferUsage {
	if target == glx.ElementArrayBuffer {
		return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	}
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}

func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

func (d *Device) CreateFramebuffer() glx.Framebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb := glx.Framebuffer(d.newID())
	d.framebuffers[fb] = &framebuffer{}
	return fb
}

func (d *Device) BindFramebuffer(fb glx.Framebuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boundFB = fb
}

// Viewport records the viewport for the bound framebuffer.
func (d *Device) Viewport(x, y, width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = [4]int{x, y, width, height}
	if f := d.framebuffers[d.boundFB]; f != nil {
		f.viewport = d.viewport
	}
}

func (d *Device) CreateTexture() glx.Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := glx.Texture(d.newID())
	d.textures[t] = &texture{params: map[glx.TextureParam]glx.TextureValue{
		glx.TextureWrapS:     glx.Repeat,
		glx.TextureWrapT:     glx.Repeat,
		glx.TextureMinFilter: glx.Nearest,
		glx.TextureMagFilter: glx.Linear,
	}}
	return t
}

func (d *Device) BindTexture(t glx.Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boundTex = t
}

// TexParameter updates the bound texture's sampler state. The sampler is
// rebuilt on the next upload.
func (d *Device) TexParameter(param glx.TextureParam, value glx.TextureValue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex := d.textures[d.boundTex]
	if tex == nil {
		d.fail(ErrNoTexture)
		return
	}
	tex.params[param] = value
}

// TexImage2D allocates an RGBA8 texture for the bound handle and uploads
// pix through the queue.
func (d *Device) TexImage2D(width, height int, pix []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texImage(d.boundTex, width, height, pix)
}

// UploadTexture is TexImage2D for t, leaving the binding untouched.
func (d *Device) UploadTexture(t glx.Texture, width, height int, pix []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texImage(t, width, height, pix)
}

// texImage replaces the HAL objects of texture id. mu must be held.
func (d *Device) texImage(id glx.Texture, width, height int, pix []byte) {
	tex := d.textures[id]
	if tex == nil {
		d.fail(ErrNoTexture)
		return
	}
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		d.fail(fmt.Errorf("wgpu: texture data %d bytes for %dx%d", len(pix), width, height))
		return
	}
	d.releaseTexture(tex)

	size := hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}
	raw, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("glx_texture_%d", id),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		d.fail(fmt.Errorf("create texture: %w", err))
		return
	}
	tex.raw = raw

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  raw,
			MipLevel: 0,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width * 4),
			RowsPerImage: uint32(height),
		},
		&size,
	)

	view, err := d.device.CreateTextureView(raw, &hal.TextureViewDescriptor{
		Label: fmt.Sprintf("glx_texture_%d_view", id),
	})
	if err != nil {
		d.releaseTexture(tex)
		d.fail(fmt.Errorf("create texture view: %w", err))
		return
	}
	tex.view = view

	sampler, err := d.device.CreateSampler(samplerDescriptor(tex.params))
	if err != nil {
		d.releaseTexture(tex)
		d.fail(fmt.Errorf("create sampler: %w", err))
		return
	}
	tex.sampler = sampler
	tex.width, tex.height = width, height
}

// releaseTexture destroys tex's HAL objects. mu must be held.
func (d *Device) releaseTexture(tex *texture) {
	if tex.sampler != nil {
		d.device.DestroySampler(tex.sampler)
		tex.sampler = nil
	}
	if tex.view != nil {
		d.device.DestroyTextureView(tex.view)
		tex.view = nil
	}
	if tex.raw != nil {
		d.device.DestroyTexture(tex.raw)
		tex.raw = nil
	}
	tex.width, tex.height = 0, 0
}

func samplerDescriptor(params map[glx.TextureParam]glx.TextureValue) *hal.SamplerDescriptor {
	return &hal.SamplerDescriptor{
		Label:        "glx_sampler",
		AddressModeU: addressMode(params[glx.TextureWrapS]),
		AddressModeV: addressMode(params[glx.TextureWrapT]),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(params[glx.TextureMagFilter]),
		MinFilter:    filterMode(params[glx.TextureMinFilter]),
		MipmapFilter: gputypes.FilterModeNearest,
	}
}

func addressMode(v glx.TextureValue) gputypes.AddressMode {
	switch v {
	case glx.Repeat:
		return gputypes.AddressModeRepeat
	case glx.MirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func filterMode(v glx.TextureValue) gputypes.FilterMode {
	if v == glx.Nearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

var (
	_ glx.Device          = (*Device)(nil)
	_ glx.TextureUploader = (*Device)(nil)
)
