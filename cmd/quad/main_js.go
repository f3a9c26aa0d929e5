//go:build js && wasm

package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/gogpu/glx"
	"github.com/gogpu/glx/backend/webgl"
	"github.com/gogpu/glx/internal/quad"
)

func main() {
	glx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	canvas := js.Global().Get("document").Call("querySelector", "canvas")
	surface := webgl.NewSurface(canvas)

	// The shaders are GLSL ES 3.00, which only WebGL 2 compiles.
	ctx, err := glx.NewContext(surface, glx.Config{
		Types:      []string{glx.ContextWebGL2},
		Attributes: glx.DefaultAttributes(),
	})
	if err != nil {
		slog.Error("quad: no context", "err", err)
		return
	}

	w, h := surface.Size()
	vs, fs := quad.Sources(quad.ProfileES)
	scene, err := quad.New(ctx, vs, fs, w, h)
	if err != nil {
		slog.Error("quad: scene setup failed", "err", err)
		return
	}

	webgl.AnimationFrame(func(float64) { scene.Frame() })
	select {}
}
