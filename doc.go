// Package glx provides thin helpers over a WebGL-style 3D graphics API.
//
// # Overview
//
// glx covers the repetitive setup every small renderer needs: acquiring a
// context with a fallback chain, compiling shaders and linking programs
// with readable errors, creating buffers, framebuffers and textures, and
// looking up uniform locations in bulk. Every helper is a near
// pass-through to the underlying API.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/glx"
//		"github.com/gogpu/glx/backend/webgl"
//	)
//
//	ctx, err := glx.NewContext(webgl.NewSurface(canvas), glx.DefaultConfig())
//	if err != nil {
//		return err // matches glx.ErrContextUnavailable
//	}
//	prog, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
//	vbo, err := ctx.CreateVertexBuffer(vertices, glx.StaticDraw)
//	u := ctx.UniformLocations(prog, "uResolution", "uTheta")
//
// # Backends
//
// The API is expressed as the Device interface. Backends provide it:
//   - backend/webgl: the browser's WebGL context (js/wasm)
//   - backend/opengl: desktop OpenGL through GLFW (cgo)
//   - backend/wgpu: the pure Go gogpu HAL, with WGSL shaders
//
// The glxtest package provides an in-memory Device for tests.
//
// # Errors
//
// Failures are reported as typed errors that match a package sentinel
// with errors.Is: ErrContextUnavailable, ErrShaderCompile, ErrProgramLink,
// ErrProgramValidate and ErrImageDecode. Compile, link and validate errors
// carry the device's info log verbatim.
//
// # Textures
//
// CreateTexture returns immediately. Image sources load in the background
// and the returned PendingTexture resolves once the pixels are on the
// device. There is no load timeout.
package glx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
