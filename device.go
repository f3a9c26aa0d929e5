package glx

import "fmt"

// Object handles issued by a Device. The zero value of each is "no object".
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	Texture     uint32
	Framebuffer uint32
)

// UniformLocation identifies a uniform within a linked program.
type UniformLocation int32

// NoUniform is the location reported for names that match no active uniform.
const NoUniform UniformLocation = -1

// Valid reports whether l refers to an actual uniform.
func (l UniformLocation) Valid() bool { return l >= 0 }

// ShaderKind selects a pipeline stage.
type ShaderKind uint8

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

// String returns the stage name.
func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderKind(%d)", uint8(k))
	}
}

// BufferTarget is the binding point a buffer is bound to.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// String returns the GL name of the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("BufferTarget(%d)", uint8(t))
	}
}

// BufferUsage is the usage hint passed with buffer data.
// The zero value is StaticDraw.
type BufferUsage uint8

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

// String returns the GL name of the usage hint.
func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "STATIC_DRAW"
	case DynamicDraw:
		return "DYNAMIC_DRAW"
	case StreamDraw:
		return "STREAM_DRAW"
	default:
		return fmt.Sprintf("BufferUsage(%d)", uint8(u))
	}
}

// TextureParam names a 2D texture sampling parameter.
type TextureParam uint8

const (
	TextureWrapS TextureParam = iota
	TextureWrapT
	TextureMinFilter
	TextureMagFilter
)

// TextureValue is a value for a TextureParam.
type TextureValue uint8

const (
	ClampToEdge TextureValue = iota
	Repeat
	MirroredRepeat
	Linear
	Nearest
)

// ClearMask selects buffers cleared by Drawer.Clear.
type ClearMask uint8

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
	StencilBufferBit
)

// DrawMode is the primitive assembly mode for Drawer.DrawArrays.
type DrawMode uint8

const (
	Triangles DrawMode = iota
	TriangleStrip
	TriangleFan
	Lines
	LineStrip
	Points
)

// Device is the subset of a graphics API that glx drives. Backends
// implement it over WebGL, desktop OpenGL or wgpu; glxtest implements it in
// memory.
//
// Methods follow GL semantics: creation returns a zero handle on failure,
// and status is queried separately from the operation that sets it.
// Texture and buffer calls operate on the currently bound object.
type Device interface {
	CreateShader(kind ShaderKind) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ValidateProgram(p Program)
	ProgramValidated(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(fb Framebuffer)
	Viewport(x, y, width, height int)

	CreateTexture() Texture
	BindTexture(t Texture)
	TexParameter(param TextureParam, value TextureValue)
	// TexImage2D uploads tightly packed, non-premultiplied RGBA8 pixels.
	TexImage2D(width, height int, pix []byte)

	UniformLocation(p Program, name string) UniformLocation
}

// Drawer is implemented by devices that can also issue draw calls.
// It covers what a simple render loop needs.
type Drawer interface {
	UseProgram(p Program)
	// AttribLocation returns -1 when the program has no such attribute.
	AttribLocation(p Program, name string) int
	// VertexAttribPointer describes float32 attributes of the bound
	// ARRAY_BUFFER. Stride and offset are in bytes.
	VertexAttribPointer(index, size int, normalized bool, stride, offset int)
	EnableVertexAttribArray(index int)
	Uniform1f(l UniformLocation, v float32)
	Uniform2f(l UniformLocation, v0, v1 float32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	DrawArrays(mode DrawMode, first, count int)
}

// TextureUploader is implemented by devices that can fill a texture without
// binding it. Uploads from concurrent texture loads go through it when
// available, so they never depend on the shared texture binding.
type TextureUploader interface {
	UploadTexture(t Texture, width, height int, pix []byte)
}

// Executor is implemented by devices whose calls must run on a specific
// thread. Execute runs fn there and returns after fn returns.
type Executor interface {
	Execute(fn func())
}
