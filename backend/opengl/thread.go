//go:build !js

package opengl

import "github.com/faiface/mainthread"

// Run runs run on a new goroutine while the calling goroutine, which must
// be the main goroutine, serves Call. It returns when run returns.
func Run(run func()) {
	mainthread.Run(run)
}

// Call runs fn on the main thread and waits for it.
func Call(fn func()) {
	mainthread.Call(fn)
}
