//go:build js && wasm

package webgl

import (
	"syscall/js"

	"github.com/gogpu/glx"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	dynamicDraw        int
	streamDraw         int
	floatType          int
	framebuffer        int
	texture2D          int
	rgba               int
	unsignedByte       int
	textureWrapS       int
	textureWrapT       int
	textureMinFilter   int
	textureMagFilter   int
	clampToEdge        int
	repeat             int
	mirroredRepeat     int
	linear             int
	nearest            int
	compileStatus      int
	linkStatus         int
	validateStatus     int
	vertexShader       int
	fragmentShader     int
	colorBufferBit     int
	depthBufferBit     int
	stencilBufferBit   int
	triangles          int
	triangleStrip      int
	triangleFan        int
	lines              int
	lineStrip          int
	points             int
}

func loadConsts(gl js.Value) glConsts {
	return glConsts{
		arrayBuffer:        gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:        gl.Get("DYNAMIC_DRAW").Int(),
		streamDraw:         gl.Get("STREAM_DRAW").Int(),
		floatType:          gl.Get("FLOAT").Int(),
		framebuffer:        gl.Get("FRAMEBUFFER").Int(),
		texture2D:          gl.Get("TEXTURE_2D").Int(),
		rgba:               gl.Get("RGBA").Int(),
		unsignedByte:       gl.Get("UNSIGNED_BYTE").Int(),
		textureWrapS:       gl.Get("TEXTURE_WRAP_S").Int(),
		textureWrapT:       gl.Get("TEXTURE_WRAP_T").Int(),
		textureMinFilter:   gl.Get("TEXTURE_MIN_FILTER").Int(),
		textureMagFilter:   gl.Get("TEXTURE_MAG_FILTER").Int(),
		clampToEdge:        gl.Get("CLAMP_TO_EDGE").Int(),
		repeat:             gl.Get("REPEAT").Int(),
		mirroredRepeat:     gl.Get("MIRRORED_REPEAT").Int(),
		linear:             gl.Get("LINEAR").Int(),
		nearest:            gl.Get("NEAREST").Int(),
		compileStatus:      gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         gl.Get("LINK_STATUS").Int(),
		validateStatus:     gl.Get("VALIDATE_STATUS").Int(),
		vertexShader:       gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     gl.Get("FRAGMENT_SHADER").Int(),
		colorBufferBit:     gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:     gl.Get("DEPTH_BUFFER_BIT").Int(),
		stencilBufferBit:   gl.Get("STENCIL_BUFFER_BIT").Int(),
		triangles:          gl.Get("TRIANGLES").Int(),
		triangleStrip:      gl.Get("TRIANGLE_STRIP").Int(),
		triangleFan:        gl.Get("TRIANGLE_FAN").Int(),
		lines:              gl.Get("LINES").Int(),
		lineStrip:          gl.Get("LINE_STRIP").Int(),
		points:             gl.Get("POINTS").Int(),
	}
}

type uniformKey struct {
	program glx.Program
	name    string
}

// Device implements glx.Device and glx.Drawer over a WebGL rendering
// context. Like the context it wraps, it must be used from the JS thread.
type Device struct {
	gl     js.Value
	consts glConsts

	next       uint32
	objects    map[uint32]js.Value
	uniforms   []js.Value
	uniformIdx map[uniformKey]glx.UniformLocation
}

func newDevice(gl js.Value) *Device {
	return &Device{
		gl:         gl,
		consts:     loadConsts(gl),
		objects:    make(map[uint32]js.Value),
		uniformIdx: make(map[uniformKey]glx.UniformLocation),
	}
}

// GL returns the underlying WebGL context.
func (d *Device) GL() js.Value { return d.gl }

// put stores a created object and returns its handle, or 0 for null.
func (d *Device) put(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	d.next++
	d.objects[d.next] = v
	return d.next
}

// get returns the object for id, or null for 0 and unknown ids.
func (d *Device) get(id uint32) js.Value {
	if v, ok := d.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (d *Device) drop(id uint32) js.Value {
	v := d.get(id)
	delete(d.objects, id)
	return v
}

func (d *Device) CreateShader(kind glx.ShaderKind) glx.Shader {
	typ := d.consts.vertexShader
	if kind == glx.FragmentShader {
		typ = d.consts.fragmentShader
	}
	return glx.Shader(d.put(d.gl.Call("createShader", typ)))
}

func (d *Device) ShaderSource(s glx.Shader, source string) {
	d.gl.Call("shaderSource", d.get(uint32(s)), source)
}

func (d *Device) CompileShader(s glx.Shader) {
	d.gl.Call("compileShader", d.get(uint32(s)))
}

func (d *Device) ShaderCompiled(s glx.Shader) bool {
	return d.gl.Call("getShaderParameter", d.get(uint32(s)), d.consts.compileStatus).Truthy()
}

func (d *Device) ShaderInfoLog(s glx.Shader) string {
	log := d.gl.Call("getShaderInfoLog", d.get(uint32(s)))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (d *Device) DeleteShader(s glx.Shader) {
	d.gl.Call("deleteShader", d.drop(uint32(s)))
}

func (d *Device) CreateProgram() glx.Program {
	return glx.Program(d.put(d.gl.Call("createProgram")))
}

func (d *Device) AttachShader(p glx.Program, s glx.Shader) {
	d.gl.Call("attachShader", d.get(uint32(p)), d.get(uint32(s)))
}

func (d *Device) LinkProgram(p glx.Program) {
	d.gl.Call("linkProgram", d.get(uint32(p)))
}

func (d *Device) ProgramLinked(p glx.Program) bool {
	return d.gl.Call("getProgramParameter", d.get(uint32(p)), d.consts.linkStatus).Truthy()
}

func (d *Device) ValidateProgram(p glx.Program) {
	d.gl.Call("validateProgram", d.get(uint32(p)))
}

func (d *Device) ProgramValidated(p glx.Program) bool {
	return d.gl.Call("getProgramParameter", d.get(uint32(p)), d.consts.validateStatus).Truthy()
}

func (d *Device) ProgramInfoLog(p glx.Program) string {
	log := d.gl.Call("getProgramInfoLog", d.get(uint32(p)))
	if log.IsNull() {
		return ""
	}
	return log.String()
}

func (d *Device) DeleteProgram(p glx.Program) {
	d.gl.Call("deleteProgram", d.drop(uint32(p)))
	for k := range d.uniformIdx {
		if k.program == p {
			d.uniforms[d.uniformIdx[k]] = js.Null()
			delete(d.uniformIdx, k)
		}
	}
}

func (d *Device) CreateBuffer() glx.Buffer {
	return glx.Buffer(d.put(d.gl.Call("createBuffer")))
}

func (d *Device) target(t glx.BufferTarget) int {
	if t == glx.ElementArrayBuffer {
		return d.consts.elementArrayBuffer
	}
	return d.consts.arrayBuffer
}

func (d *Device) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	d.gl.Call("bindBuffer", d.target(target), d.get(uint32(b)))
}

func (d *Device) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	u := d.consts.staticDraw
	switch usage {
	case glx.DynamicDraw:
		u = d.consts.dynamicDraw
	case glx.StreamDraw:
		u = d.consts.streamDraw
	}
	d.gl.Call("bufferData", d.target(target), uint8Array(data), u)
}

func (d *Device) CreateFramebuffer() glx.Framebuffer {
	return glx.Framebuffer(d.put(d.gl.Call("createFramebuffer")))
}

func (d *Device) BindFramebuffer(fb glx.Framebuffer) {
	d.gl.Call("bindFramebuffer", d.consts.framebuffer, d.get(uint32(fb)))
}

func (d *Device) Viewport(x, y, width, height int) {
	d.gl.Call("viewport", x, y, width, height)
}

func (d *Device) CreateTexture() glx.Texture {
	return glx.Texture(d.put(d.gl.Call("createTexture")))
}

func (d *Device) BindTexture(t glx.Texture) {
	d.gl.Call("bindTexture", d.consts.texture2D, d.get(uint32(t)))
}

func (d *Device) TexParameter(param glx.TextureParam, value glx.TextureValue) {
	var p int
	switch param {
	case glx.TextureWrapS:
		p = d.consts.textureWrapS
	case glx.TextureWrapT:
		p = d.consts.textureWrapT
	case glx.TextureMinFilter:
		p = d.consts.textureMinFilter
	case glx.TextureMagFilter:
		p = d.consts.textureMagFilter
	default:
		return
	}
	var v int
	switch value {
	case glx.ClampToEdge:
		v = d.consts.clampToEdge
	case glx.Repeat:
		v = d.consts.repeat
	case glx.MirroredRepeat:
		v = d.consts.mirroredRepeat
	case glx.Linear:
		v = d.consts.linear
	case glx.Nearest:
		v = d.consts.nearest
	default:
		return
	}
	d.gl.Call("texParameteri", d.consts.texture2D, p, v)
}

func (d *Device) TexImage2D(width, height int, pix []byte) {
	d.gl.Call("texImage2D", d.consts.texture2D, 0, d.consts.rgba, width, height, 0,
		d.consts.rgba, d.consts.unsignedByte, uint8Array(pix))
}

// UniformLocation caches the WebGLUniformLocation for (p, name) and returns
// its index.
func (d *Device) UniformLocation(p glx.Program, name string) glx.UniformLocation {
	key := uniformKey{p, name}
	if l, ok := d.uniformIdx[key]; ok {
		return l
	}
	loc := d.gl.Call("getUniformLocation", d.get(uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return glx.NoUniform
	}
	l := glx.UniformLocation(len(d.uniforms))
	d.uniforms = append(d.uniforms, loc)
	d.uniformIdx[key] = l
	return l
}

func (d *Device) uniform(l glx.UniformLocation) js.Value {
	if !l.Valid() || int(l) >= len(d.uniforms) {
		return js.Null()
	}
	return d.uniforms[l]
}

// Drawer

func (d *Device) UseProgram(p glx.Program) {
	d.gl.Call("useProgram", d.get(uint32(p)))
}

func (d *Device) AttribLocation(p glx.Program, name string) int {
	return d.gl.Call("getAttribLocation", d.get(uint32(p)), name).Int()
}

func (d *Device) VertexAttribPointer(index, size int, normalized bool, stride, offset int) {
	d.gl.Call("vertexAttribPointer", index, size, d.consts.floatType, normalized, stride, offset)
}

func (d *Device) EnableVertexAttribArray(index int) {
	d.gl.Call("enableVertexAttribArray", index)
}

func (d *Device) Uniform1f(l glx.UniformLocation, v float32) {
	d.gl.Call("uniform1f", d.uniform(l), v)
}

func (d *Device) Uniform2f(l glx.UniformLocation, v0, v1 float32) {
	d.gl.Call("uniform2f", d.uniform(l), v0, v1)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.gl.Call("clearColor", r, g, b, a)
}

func (d *Device) Clear(mask glx.ClearMask) {
	var m int
	if mask&glx.ColorBufferBit != 0 {
		m |= d.consts.colorBufferBit
	}
	if mask&glx.DepthBufferBit != 0 {
		m |= d.consts.depthBufferBit
	}
	if mask&glx.StencilBufferBit != 0 {
		m |= d.consts.stencilBufferBit
	}
	d.gl.Call("clear", m)
}

func (d *Device) DrawArrays(mode glx.DrawMode, first, count int) {
	m := d.consts.triangles
	switch mode {
	case glx.TriangleStrip:
		m = d.consts.triangleStrip
	case glx.TriangleFan:
		m = d.consts.triangleFan
	case glx.Lines:
		m = d.consts.lines
	case glx.LineStrip:
		m = d.consts.lineStrip
	case glx.Points:
		m = d.consts.points
	}
	d.gl.Call("drawArrays", m, first, count)
}

// uint8Array copies data into a new Uint8Array.
func uint8Array(data []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	if len(data) > 0 {
		js.CopyBytesToJS(arr, data)
	}
	return arr
}

var (
	_ glx.Device = (*Device)(nil)
	_ glx.Drawer = (*Device)(nil)
)
