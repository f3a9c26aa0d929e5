// Package webgl implements glx.Device over a browser WebGL context.
//
// The package only has an implementation under js/wasm:
//
//	canvas := js.Global().Get("document").Call("getElementById", "view")
//	ctx, err := glx.NewContext(webgl.NewSurface(canvas), glx.DefaultConfig())
//
// Handles map to WebGL objects through per-device tables, and GL enum
// values are read from the context object when it is created. Uniform
// locations are indices into a table of WebGLUniformLocation values.
package webgl
