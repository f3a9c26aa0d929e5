// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glxtest

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glx"
)

type shader struct {
	kind     glx.ShaderKind
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders   []glx.Shader
	linked    bool
	validated bool
	log       string
}

type buffer struct {
	data  []byte
	usage glx.BufferUsage
}

type texture struct {
	params        map[glx.TextureParam]glx.TextureValue
	width, height int
	pix           []byte
}

// DrawCall records one DrawArrays call.
type DrawCall struct {
	Program glx.Program
	Mode    glx.DrawMode
	First   int
	Count   int
}

// Device is an in-memory glx.Device that also implements glx.Drawer and
// glx.Executor. It keeps enough state to assert on what a helper did.
//
// Script failures by setting the exported fields before use. All methods
// are safe for concurrent use.
type Device struct {
	// FailCompile maps shader source to the info log its compile fails with.
	FailCompile map[string]string

	// LinkLog, when non-empty, makes every LinkProgram fail with this log.
	LinkLog string

	// ValidateLog, when non-empty, makes every ValidateProgram fail with
	// this log.
	ValidateLog string

	// Uniforms lists active uniform names. A name's location is its index.
	Uniforms []string

	// Attribs lists active attribute names. A name's location is its index.
	Attribs []string

	// Exhausted makes every Create call return the zero handle.
	Exhausted bool

	mu           sync.Mutex
	next         uint32
	shaders      map[glx.Shader]*shader
	programs     map[glx.Program]*program
	buffers      map[glx.Buffer]*buffer
	textures     map[glx.Texture]*texture
	framebuffers map[glx.Framebuffer]bool
	bound        map[glx.BufferTarget]glx.Buffer
	boundTex     glx.Texture
	boundFB      glx.Framebuffer
	viewport     [4]int
	current      glx.Program
	enabled      map[int]bool
	uniforms     map[glx.UniformLocation][]float32
	clearColor   [4]float32
	clears       []glx.ClearMask
	draws        []DrawCall
	calls        []string

	executed atomic.Int64
}

// NewDevice returns an empty device.
func NewDevice() *Device {
	return &Device{
		FailCompile:  make(map[string]string),
		shaders:      make(map[glx.Shader]*shader),
		programs:     make(map[glx.Program]*program),
		buffers:      make(map[glx.Buffer]*buffer),
		textures:     make(map[glx.Texture]*texture),
		framebuffers: make(map[glx.Framebuffer]bool),
		bound:        make(map[glx.BufferTarget]glx.Buffer),
		enabled:      make(map[int]bool),
		uniforms:     make(map[glx.UniformLocation][]float32),
	}
}

// record appends a call to the journal. mu must be held.
func (d *Device) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

// id issues a fresh handle, or 0 when exhausted. mu must be held.
func (d *Device) id() uint32 {
	if d.Exhausted {
		return 0
	}
	d.next++
	return d.next
}

func (d *Device) CreateShader(kind glx.ShaderKind) glx.Shader {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := glx.Shader(d.id())
	d.record("CreateShader(%s) = %d", kind, s)
	if s != 0 {
		d.shaders[s] = &shader{kind: kind}
	}
	return s
}

func (d *Device) ShaderSource(s glx.Shader, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ShaderSource(%d)", s)
	if sh := d.shaders[s]; sh != nil {
		sh.source = source
	}
}

func (d *Device) CompileShader(s glx.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CompileShader(%d)", s)
	sh := d.shaders[s]
	if sh == nil {
		return
	}
	if log, fail := d.FailCompile[sh.source]; fail {
		sh.compiled, sh.log = false, log
		return
	}
	sh.compiled, sh.log = true, ""
}

func (d *Device) ShaderCompiled(s glx.Shader) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	sh := d.shaders[s]
	return sh != nil && sh.compiled
}

func (d *Device) ShaderInfoLog(s glx.Shader) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sh := d.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

func (d *Device) DeleteShader(s glx.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteShader(%d)", s)
	delete(d.shaders, s)
}

func (d *Device) CreateProgram() glx.Program {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := glx.Program(d.id())
	d.record("CreateProgram() = %d", p)
	if p != 0 {
		d.programs[p] = &program{}
	}
	return p
}

func (d *Device) AttachShader(p glx.Program, s glx.Shader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("AttachShader(%d, %d)", p, s)
	if pr := d.programs[p]; pr != nil {
		pr.shaders = append(pr.shaders, s)
	}
}

func (d *Device) LinkProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("LinkProgram(%d)", p)
	pr := d.programs[p]
	if pr == nil {
		return
	}
	switch {
	case d.LinkLog != "":
		pr.linked, pr.log = false, d.LinkLog
	case !d.hasStages(pr):
		pr.linked, pr.log = false, "missing vertex or fragment shader"
	default:
		pr.linked, pr.log = true, ""
	}
}

// hasStages reports whether pr has a compiled shader of each kind.
// mu must be held.
func (d *Device) hasStages(pr *program) bool {
	var vs, fs bool
	for _, s := range pr.shaders {
		sh := d.shaders[s]
		if sh == nil || !sh.compiled {
			continue
		}
		switch sh.kind {
		case glx.VertexShader:
			vs = true
		case glx.FragmentShader:
			fs = true
		}
	}
	return vs && fs
}

func (d *Device) ProgramLinked(p glx.Program) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	return pr != nil && pr.linked
}

func (d *Device) ValidateProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ValidateProgram(%d)", p)
	pr := d.programs[p]
	if pr == nil {
		return
	}
	if d.ValidateLog != "" || !pr.linked {
		pr.validated, pr.log = false, d.ValidateLog
		return
	}
	pr.validated = true
}

func (d *Device) ProgramValidated(p glx.Program) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pr := d.programs[p]
	return pr != nil && pr.validated
}

func (d *Device) ProgramInfoLog(p glx.Program) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pr := d.programs[p]; pr != nil {
		return pr.log
	}
	return ""
}

func (d *Device) DeleteProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteProgram(%d)", p)
	delete(d.programs, p)
}

func (d *Device) CreateBuffer() glx.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := glx.Buffer(d.id())
	d.record("CreateBuffer() = %d", b)
	if b != 0 {
		d.buffers[b] = &buffer{}
	}
	return b
}

func (d *Device) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindBuffer(%s, %d)", target, b)
	d.bound[target] = b
}

func (d *Device) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BufferData(%s, %d bytes, %s)", target, len(data), usage)
	if b := d.buffers[d.bound[target]]; b != nil {
		b.data = slices.Clone(data)
		b.usage = usage
	}
}

func (d *Device) CreateFramebuffer() glx.Framebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	fb := glx.Framebuffer(d.id())
	d.record("CreateFramebuffer() = %d", fb)
	if fb != 0 {
		d.framebuffers[fb] = true
	}
	return fb
}

func (d *Device) BindFramebuffer(fb glx.Framebuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindFramebuffer(%d)", fb)
	d.boundFB = fb
}

func (d *Device) Viewport(x, y, width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
	d.viewport = [4]int{x, y, width, height}
}

func (d *Device) CreateTexture() glx.Texture {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := glx.Texture(d.id())
	d.record("CreateTexture() = %d", t)
	if t != 0 {
		d.textures[t] = &texture{params: make(map[glx.TextureParam]glx.TextureValue)}
	}
	return t
}

func (d *Device) BindTexture(t glx.Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindTexture(%d)", t)
	d.boundTex = t
}

func (d *Device) TexParameter(param glx.TextureParam, value glx.TextureValue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("TexParameter(%d, %d)", param, value)
	if t := d.textures[d.boundTex]; t != nil {
		t.params[param] = value
	}
}

func (d *Device) TexImage2D(width, height int, pix []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("TexImage2D(%d, %d, %d bytes)", width, height, len(pix))
	if t := d.textures[d.boundTex]; t != nil {
		t.width, t.height = width, height
		t.pix = slices.Clone(pix)
	}
}

func (d *Device) UniformLocation(p glx.Program, name string) glx.UniformLocation {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformLocation(%d, %q)", p, name)
	if pr := d.programs[p]; pr == nil || !pr.linked {
		return glx.NoUniform
	}
	if i := slices.Index(d.Uniforms, name); i >= 0 {
		return glx.UniformLocation(i)
	}
	return glx.NoUniform
}

// Drawer

func (d *Device) UseProgram(p glx.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UseProgram(%d)", p)
	d.current = p
}

func (d *Device) AttribLocation(p glx.Program, name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pr := d.programs[p]; pr == nil || !pr.linked {
		return -1
	}
	return slices.Index(d.Attribs, name)
}

func (d *Device) VertexAttribPointer(index, size int, normalized bool, stride, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("VertexAttribPointer(%d, %d, %t, %d, %d)", index, size, normalized, stride, offset)
}

func (d *Device) EnableVertexAttribArray(index int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("EnableVertexAttribArray(%d)", index)
	d.enabled[index] = true
}

func (d *Device) Uniform1f(l glx.UniformLocation, v float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l.Valid() {
		d.uniforms[l] = []float32{v}
	}
}

func (d *Device) Uniform2f(l glx.UniformLocation, v0, v1 float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l.Valid() {
		d.uniforms[l] = []float32{v0, v1}
	}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask glx.ClearMask) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clears = append(d.clears, mask)
}

func (d *Device) DrawArrays(mode glx.DrawMode, first, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DrawArrays(%d, %d, %d)", mode, first, count)
	d.draws = append(d.draws, DrawCall{Program: d.current, Mode: mode, First: first, Count: count})
}

// Execute implements glx.Executor by running fn on the calling goroutine.
func (d *Device) Execute(fn func()) {
	d.executed.Add(1)
	fn()
}

// Inspection

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shaders)
}

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.programs)
}

// BufferContents returns a copy of b's data and its usage hint.
func (d *Device) BufferContents(b glx.Buffer) ([]byte, glx.BufferUsage, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := d.buffers[b]
	if buf == nil {
		return nil, 0, false
	}
	return slices.Clone(buf.data), buf.usage, true
}

// BoundBuffer returns the buffer bound to target.
func (d *Device) BoundBuffer(target glx.BufferTarget) glx.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bound[target]
}

// BoundFramebuffer returns the bound framebuffer.
func (d *Device) BoundFramebuffer() glx.Framebuffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.boundFB
}

// CurrentViewport returns the last viewport as x, y, width, height.
func (d *Device) CurrentViewport() [4]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// TextureParam returns the value set for param on t.
func (d *Device) TextureParam(t glx.Texture, param glx.TextureParam) (glx.TextureValue, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex := d.textures[t]
	if tex == nil {
		return 0, false
	}
	v, ok := tex.params[param]
	return v, ok
}

// TextureImage returns the size and a copy of the pixels uploaded to t.
// The pixel slice is nil when nothing was uploaded.
func (d *Device) TextureImage(t glx.Texture) (width, height int, pix []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	tex := d.textures[t]
	if tex == nil {
		return 0, 0, nil
	}
	return tex.width, tex.height, slices.Clone(tex.pix)
}

// UniformValue returns the last value set at l.
func (d *Device) UniformValue(l glx.UniformLocation) []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.uniforms[l])
}

// AttribEnabled reports whether the vertex attribute array index is enabled.
func (d *Device) AttribEnabled(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled[index]
}

// ClearState returns the clear color and every mask passed to Clear.
func (d *Device) ClearState() ([4]float32, []glx.ClearMask) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clearColor, slices.Clone(d.clears)
}

// Draws returns every DrawArrays call in order.
func (d *Device) Draws() []DrawCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.draws)
}

// Calls returns the journal of state-changing calls.
func (d *Device) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// Executed returns how many times Execute was called.
func (d *Device) Executed() int {
	return int(d.executed.Load())
}

var (
	_ glx.Device   = (*Device)(nil)
	_ glx.Drawer   = (*Device)(nil)
	_ glx.Executor = (*Device)(nil)
)
