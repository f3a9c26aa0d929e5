// Package opengl implements glx.Device over desktop OpenGL 3.3+ core
// profile contexts created with GLFW.
//
// GL names are used directly as glx handles. All GL calls must happen on
// the thread that owns the context, so programs run under Run and make
// their calls inside Call; the Device hands background texture uploads to
// the main thread through the same mechanism.
//
//	func main() {
//		opengl.Run(func() {
//			var (
//				ctx *glx.Context
//				err error
//			)
//			opengl.Call(func() {
//				s := opengl.NewSurface(800, 600, "demo")
//				ctx, err = glx.NewContext(s, opengl.DefaultConfig())
//			})
//			...
//		})
//	}
//
// The package requires cgo.
package opengl
