//go:build !js

package opengl

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/glx"
)

// Device implements glx.Device, glx.Drawer and glx.Executor over the GL
// context of one GLFW window.
type Device struct {
	window *glfw.Window
	vao    uint32
}

func newDevice(window *glfw.Window) *Device {
	d := &Device{window: window}
	// Core profiles draw nothing without a bound vertex array.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d
}

// Window returns the window owning the context.
func (d *Device) Window() *glfw.Window { return d.window }

// Execute runs fn on the main thread. It must not be called from the main
// thread itself.
func (d *Device) Execute(fn func()) {
	Call(func() {
		d.window.MakeContextCurrent()
		fn()
	})
}

// SwapBuffers presents the back buffer.
func (d *Device) SwapBuffers() { d.window.SwapBuffers() }

func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func (d *Device) CreateShader(kind glx.ShaderKind) glx.Shader {
	typ := uint32(gl.VERTEX_SHADER)
	if kind == glx.FragmentShader {
		typ = gl.FRAGMENT_SHADER
	}
	return glx.Shader(gl.CreateShader(typ))
}

func (d *Device) ShaderSource(s glx.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (d *Device) CompileShader(s glx.Shader) {
	gl.CompileShader(uint32(s))
}

func (d *Device) ShaderCompiled(s glx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(s glx.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(s glx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (d *Device) CreateProgram() glx.Program {
	return glx.Program(gl.CreateProgram())
}

func (d *Device) AttachShader(p glx.Program, s glx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *Device) LinkProgram(p glx.Program) {
	gl.LinkProgram(uint32(p))
}

func (d *Device) ProgramLinked(p glx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ValidateProgram(p glx.Program) {
	gl.ValidateProgram(uint32(p))
}

func (d *Device) ProgramValidated(p glx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.VALIDATE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(p glx.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteProgram(p glx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *Device) CreateBuffer() glx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glx.Buffer(b)
}

func bufferTarget(t glx.BufferTarget) uint32 {
	if t == glx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u glx.BufferUsage) uint32 {
	switch u {
	case glx.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case glx.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (d *Device) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	gl.BindBuffer(bufferTarget(target), uint32(b))
}

func (d *Device) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(bufferTarget(target), len(data), gl.Ptr(data), bufferUsage(usage))
}

func (d *Device) CreateFramebuffer() glx.Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return glx.Framebuffer(fb)
}

func (d *Device) BindFramebuffer(fb glx.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) CreateTexture() glx.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return glx.Texture(t)
}

func (d *Device) BindTexture(t glx.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func textureParam(p glx.TextureParam) (uint32, bool) {
	switch p {
	case glx.TextureWrapS:
		return gl.TEXTURE_WRAP_S, true
	case glx.TextureWrapT:
		return gl.TEXTURE_WRAP_T, true
	case glx.TextureMinFilter:
		return gl.TEXTURE_MIN_FILTER, true
	case glx.TextureMagFilter:
		return gl.TEXTURE_MAG_FILTER, true
	}
	return 0, false
}

func textureValue(v glx.TextureValue) (int32, bool) {
	switch v {
	case glx.ClampToEdge:
		return gl.CLAMP_TO_EDGE, true
	case glx.Repeat:
		return gl.REPEAT, true
	case glx.MirroredRepeat:
		return gl.MIRRORED_REPEAT, true
	case glx.Linear:
		return gl.LINEAR, true
	case glx.Nearest:
		return gl.NEAREST, true
	}
	return 0, false
}

func (d *Device) TexParameter(param glx.TextureParam, value glx.TextureValue) {
	p, ok := textureParam(param)
	v, ok2 := textureValue(value)
	if !ok || !ok2 {
		return
	}
	gl.TexParameteri(gl.TEXTURE_2D, p, v)
}

func (d *Device) TexImage2D(width, height int, pix []byte) {
	ptr := gl.Ptr(nil)
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (d *Device) UniformLocation(p glx.Program, name string) glx.UniformLocation {
	return glx.UniformLocation(gl.GetUniformLocation(uint32(p), cstr(name)))
}

// Drawer

func (d *Device) UseProgram(p glx.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) AttribLocation(p glx.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p), cstr(name)))
}

func (d *Device) VertexAttribPointer(index, size int, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(index), int32(size), gl.FLOAT, normalized, int32(stride), gl.PtrOffset(offset))
}

func (d *Device) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

func (d *Device) Uniform1f(l glx.UniformLocation, v float32) {
	gl.Uniform1f(int32(l), v)
}

func (d *Device) Uniform2f(l glx.UniformLocation, v0, v1 float32) {
	gl.Uniform2f(int32(l), v0, v1)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func clearMask(m glx.ClearMask) uint32 {
	var mask uint32
	if m&glx.ColorBufferBit != 0 {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if m&glx.DepthBufferBit != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if m&glx.StencilBufferBit != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	return mask
}

func (d *Device) Clear(mask glx.ClearMask) {
	gl.Clear(clearMask(mask))
}

func drawMode(m glx.DrawMode) uint32 {
	switch m {
	case glx.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case glx.TriangleFan:
		return gl.TRIANGLE_FAN
	case glx.Lines:
		return gl.LINES
	case glx.LineStrip:
		return gl.LINE_STRIP
	case glx.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func (d *Device) DrawArrays(mode glx.DrawMode, first, count int) {
	gl.DrawArrays(drawMode(mode), int32(first), int32(count))
}

var (
	_ glx.Device   = (*Device)(nil)
	_ glx.Drawer   = (*Device)(nil)
	_ glx.Executor = (*Device)(nil)
)
