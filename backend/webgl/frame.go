//go:build js && wasm

package webgl

import "syscall/js"

// AnimationFrame calls fn on every requestAnimationFrame tick with the
// frame timestamp in milliseconds, until stop is called.
func AnimationFrame(fn func(t float64)) (stop func()) {
	var (
		cb      js.Func
		id      js.Value
		stopped bool
	)
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		if stopped {
			return nil
		}
		fn(args[0].Float())
		id = js.Global().Call("requestAnimationFrame", cb)
		return nil
	})
	id = js.Global().Call("requestAnimationFrame", cb)

	return func() {
		if stopped {
			return
		}
		stopped = true
		js.Global().Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
