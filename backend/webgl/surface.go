//go:build js && wasm

package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/gogpu/glx"
)

// Surface implements glx.Surface over a canvas element.
type Surface struct {
	canvas js.Value
}

// NewSurface returns a surface for canvas.
func NewSurface(canvas js.Value) *Surface {
	return &Surface{canvas: canvas}
}

// Canvas returns the canvas element.
func (s *Surface) Canvas() js.Value { return s.canvas }

// Size returns the canvas drawing buffer size.
func (s *Surface) Size() (width, height int) {
	return s.canvas.Get("width").Int(), s.canvas.Get("height").Int()
}

// GetContext calls canvas.getContext. A null result means the browser does
// not support contextType; a thrown exception is returned as an error.
func (s *Surface) GetContext(contextType string, attrs glx.Attributes) (dev glx.Device, err error) {
	if s.canvas.IsUndefined() || s.canvas.IsNull() {
		return nil, fmt.Errorf("webgl: no canvas")
	}
	defer func() {
		if r := recover(); r != nil {
			dev, err = nil, fmt.Errorf("webgl: getContext(%q): %v", contextType, r)
		}
	}()

	gl := s.canvas.Call("getContext", contextType, attributesObject(attrs))
	if gl.IsNull() || gl.IsUndefined() {
		return nil, nil
	}
	return newDevice(gl), nil
}

func attributesObject(a glx.Attributes) map[string]any {
	pref := a.PowerPreference
	if pref == "" {
		pref = glx.PowerDefault
	}
	return map[string]any{
		"alpha":                        a.Alpha,
		"depth":                        a.Depth,
		"stencil":                      a.Stencil,
		"antialias":                    a.Antialias,
		"premultipliedAlpha":           a.PremultipliedAlpha,
		"preserveDrawingBuffer":        a.PreserveDrawingBuffer,
		"failIfMajorPerformanceCaveat": a.FailIfMajorPerformanceCaveat,
		"desynchronized":               a.Desynchronized,
		"powerPreference":              string(pref),
	}
}
