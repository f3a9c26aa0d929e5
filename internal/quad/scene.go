// Package quad draws the rotating colored quad shown by cmd/quad.
//
// The scene only talks to glx.Context and glx.Drawer, so the browser and
// desktop programs share it and tests run it on glxtest.
package quad

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/glx"
)

// Profile selects the shading language of the quad shaders.
type Profile uint8

const (
	// ProfileES is GLSL ES 3.00, for WebGL 2 contexts.
	ProfileES Profile = iota
	// ProfileCore is GLSL 3.30 core, for desktop OpenGL 3.3+.
	ProfileCore
)

var (
	//go:embed shaders/quad_es.vert
	esVertex string
	//go:embed shaders/quad_es.frag
	esFragment string
	//go:embed shaders/quad_330.vert
	coreVertex string
	//go:embed shaders/quad_330.frag
	coreFragment string
)

// Sources returns the vertex and fragment shader sources for p.
func Sources(p Profile) (vertex, fragment string) {
	if p == ProfileCore {
		return coreVertex, coreFragment
	}
	return esVertex, esFragment
}

// Shape holds the quad as a triangle strip of x, y, r, g, b vertices.
var Shape = []float32{
	+0.625, +0.625, 1, 1, 0,
	-0.625, +0.625, 1, 1, 0,
	+0.625, -0.625, 1, 0, 1,
	-0.625, -0.625, 0, 1, 1,
}

const (
	floatSize    = 4
	vertexFloats = 5
	stride       = vertexFloats * floatSize

	// DefaultSpeed is the rotation step per frame in radians.
	DefaultSpeed = 0.01
)

// Uniform names used by the shaders.
const (
	UniformResolution = "uResolution"
	UniformTheta      = "uTheta"
)

// ErrNoDrawer is returned by New for contexts whose device cannot draw.
var ErrNoDrawer = errors.New("quad: device does not implement glx.Drawer")

// Scene owns the quad's program and vertex buffer.
type Scene struct {
	ctx    *glx.Context
	drawer glx.Drawer

	program  glx.Program
	vertices glx.Buffer
	uniforms glx.UniformLocations

	width, height int

	// Theta is the current rotation in radians.
	Theta float32
	// Speed is added to Theta after every frame.
	Speed float32
}

// New builds the program from the given sources, uploads Shape and wires
// the vertex attributes. Attributes and uniforms the program does not use
// are skipped.
func New(ctx *glx.Context, vertexSource, fragmentSource string, width, height int) (*Scene, error) {
	drawer, ok := ctx.Drawer()
	if !ok {
		return nil, ErrNoDrawer
	}
	program, err := ctx.CreateProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("quad: %w", err)
	}
	drawer.UseProgram(program)

	vertices, err := ctx.CreateVertexBuffer(Shape, glx.StaticDraw)
	if err != nil {
		return nil, fmt.Errorf("quad: vertex buffer: %w", err)
	}
	dev := ctx.Device()
	dev.BindBuffer(glx.ArrayBuffer, vertices)
	if loc := drawer.AttribLocation(program, "aPosition"); loc >= 0 {
		drawer.VertexAttribPointer(loc, 2, false, stride, 0)
		drawer.EnableVertexAttribArray(loc)
	}
	if loc := drawer.AttribLocation(program, "aColor"); loc >= 0 {
		drawer.VertexAttribPointer(loc, 3, false, stride, 2*floatSize)
		drawer.EnableVertexAttribArray(loc)
	}

	return &Scene{
		ctx:      ctx,
		drawer:   drawer,
		program:  program,
		vertices: vertices,
		uniforms: ctx.UniformLocations(program, UniformResolution, UniformTheta),
		width:    width,
		height:   height,
		Speed:    DefaultSpeed,
	}, nil
}

// Program returns the linked quad program.
func (s *Scene) Program() glx.Program { return s.program }

// Resize changes the viewport used by later frames.
func (s *Scene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Frame draws one frame and advances the rotation.
func (s *Scene) Frame() {
	s.ctx.Device().Viewport(0, 0, s.width, s.height)

	if l := s.uniforms.Get(UniformResolution); l.Valid() {
		s.drawer.Uniform2f(l, float32(s.width), float32(s.height))
	}
	if l := s.uniforms.Get(UniformTheta); l.Valid() {
		s.drawer.Uniform1f(l, s.Theta)
	}

	s.drawer.ClearColor(1, 1, 1, 1)
	s.drawer.Clear(glx.ColorBufferBit | glx.DepthBufferBit)
	s.drawer.DrawArrays(glx.TriangleStrip, 0, len(Shape)/vertexFloats)

	s.Theta += s.Speed
}
