// Command quad draws a rotating colored quad with glx.
//
// Built for js/wasm it renders into the page's first canvas through
// WebGL. Built natively it opens a GLFW window with a desktop OpenGL core
// context, configured from quad.yaml, GLX_ environment variables and
// flags:
//
//	quad --width 800 --height 600 --speed 0.02 --antialias=false
//
// cmd/glxserve serves the wasm build with live reload.
package main
