package glx

import (
	"errors"
	"fmt"
)

// Package errors. The typed errors below match these with errors.Is.
var (
	// ErrContextUnavailable is returned when no requested context type
	// could be obtained from the surface.
	ErrContextUnavailable = errors.New("glx: no supported context type")

	// ErrShaderCompile is matched by *ShaderCompileError.
	ErrShaderCompile = errors.New("glx: failed to compile shader")

	// ErrProgramLink is matched by *ProgramLinkError.
	ErrProgramLink = errors.New("glx: failed to link program")

	// ErrProgramValidate is matched by *ProgramValidateError.
	ErrProgramValidate = errors.New("glx: failed to validate program")

	// ErrImageDecode is matched by *ImageDecodeError.
	ErrImageDecode = errors.New("glx: failed to load image")

	// ErrNoResource is returned when the device hands back a zero handle,
	// which usually means the context was lost.
	ErrNoResource = errors.New("glx: device returned no resource")
)

// ShaderCompileError reports a shader that did not compile.
// Log holds the device's info log verbatim.
type ShaderCompileError struct {
	Kind ShaderKind
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("glx: failed to compile %s shader: %s", e.Kind, e.Log)
}

// Is reports whether target is ErrShaderCompile.
func (e *ShaderCompileError) Is(target error) bool { return target == ErrShaderCompile }

// ProgramLinkError reports a program that did not link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "glx: failed to link program: " + e.Log
}

// Is reports whether target is ErrProgramLink.
func (e *ProgramLinkError) Is(target error) bool { return target == ErrProgramLink }

// ProgramValidateError reports a linked program that failed validation.
type ProgramValidateError struct {
	Log string
}

func (e *ProgramValidateError) Error() string {
	return "glx: failed to validate program: " + e.Log
}

// Is reports whether target is ErrProgramValidate.
func (e *ProgramValidateError) Is(target error) bool { return target == ErrProgramValidate }

// ImageDecodeError reports a texture source that could not be fetched
// or decoded.
type ImageDecodeError struct {
	Source string
	Err    error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("glx: failed to load image %q: %v", e.Source, e.Err)
}

// Is reports whether target is ErrImageDecode.
func (e *ImageDecodeError) Is(target error) bool { return target == ErrImageDecode }

// Unwrap returns the underlying load or decode error.
func (e *ImageDecodeError) Unwrap() error { return e.Err }
