//go:build !js

package opengl

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/glx"
)

// Context types, most capable first.
const (
	ContextGL41Core = "opengl-4.1-core"
	ContextGL33Core = "opengl-3.3-core"
)

type version struct {
	major, minor int
}

var versions = map[string]version{
	ContextGL41Core: {4, 1},
	ContextGL33Core: {3, 3},
}

// DefaultConfig returns the desktop fallback chain with
// glx.DefaultAttributes.
func DefaultConfig() glx.Config {
	return glx.Config{
		Types:      []string{ContextGL41Core, ContextGL33Core},
		Attributes: glx.DefaultAttributes(),
	}
}

var (
	glfwOnce sync.Once
	glfwErr  error
)

type hint struct {
	key   glfw.Hint
	value int
}

// windowHints translates a context type and attributes into GLFW hints.
// ok is false for unknown types.
func windowHints(contextType string, attrs glx.Attributes) (hints []hint, ok bool) {
	v, ok := versions[contextType]
	if !ok {
		return nil, false
	}
	bits := func(on bool, n int) int {
		if on {
			return n
		}
		return 0
	}
	samples := 0
	if attrs.Antialias {
		samples = 4
	}
	return []hint{
		{glfw.ContextVersionMajor, v.major},
		{glfw.ContextVersionMinor, v.minor},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.Resizable, glfw.False},
		{glfw.Samples, samples},
		{glfw.AlphaBits, bits(attrs.Alpha, 8)},
		{glfw.DepthBits, bits(attrs.Depth, 24)},
		{glfw.StencilBits, bits(attrs.Stencil, 8)},
	}, true
}

// Surface creates GLFW windows with OpenGL contexts. Every successful
// GetContext creates a window; Close destroys them.
type Surface struct {
	width, height int
	title         string

	windows []*glfw.Window
}

// NewSurface returns a surface whose windows are width x height.
func NewSurface(width, height int, title string) *Surface {
	return &Surface{width: width, height: height, title: title}
}

// GetContext creates a window for contextType and makes its context
// current. Window creation failing means the driver lacks the version, and
// is reported as unsupported. It must be called on the main thread.
func (s *Surface) GetContext(contextType string, attrs glx.Attributes) (glx.Device, error) {
	hints, ok := windowHints(contextType, attrs)
	if !ok {
		return nil, nil
	}
	glfwOnce.Do(func() { glfwErr = glfw.Init() })
	if glfwErr != nil {
		return nil, fmt.Errorf("opengl: glfw init: %w", glfwErr)
	}

	glfw.DefaultWindowHints()
	for _, h := range hints {
		glfw.WindowHint(h.key, h.value)
	}
	window, err := glfw.CreateWindow(s.width, s.height, s.title, nil, nil)
	if err != nil {
		glx.Logger().Debug("opengl: window creation failed", "type", contextType, "err", err)
		return nil, nil
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("opengl: gl init: %w", err)
	}
	glx.Logger().Info("opengl: context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	s.windows = append(s.windows, window)
	return newDevice(window), nil
}

// Window returns the most recently created window, or nil.
func (s *Surface) Window() *glfw.Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Close destroys every window created by s and terminates GLFW.
// It must be called on the main thread.
func (s *Surface) Close() {
	for _, w := range s.windows {
		w.Destroy()
	}
	s.windows = nil
	glfw.Terminate()
	glfwOnce = sync.Once{}
}
