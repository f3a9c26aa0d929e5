package glx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/glx"
)

const (
	vertexSrc   = "void main() { gl_Position = vec4(0.0); }"
	fragmentSrc = "void main() { gl_FragColor = vec4(1.0); }"
)

func TestCompileShader(t *testing.T) {
	ctx, dev := newContext(t)
	s, err := ctx.CompileShader(glx.VertexShader, vertexSrc)
	if err != nil {
		t.Fatalf("CompileShader() error = %v", err)
	}
	if s == 0 {
		t.Fatal("CompileShader() returned the zero handle")
	}
	if !dev.ShaderCompiled(s) {
		t.Error("shader not compiled on device")
	}
}

func TestCompileShaderError(t *testing.T) {
	ctx, dev := newContext(t)
	dev.FailCompile[fragmentSrc] = "ERROR: 0:1: 'gl_FragColor' : undeclared identifier"

	s, err := ctx.CompileShader(glx.FragmentShader, fragmentSrc)
	if s != 0 {
		t.Errorf("handle = %d, want 0", s)
	}
	if !errors.Is(err, glx.ErrShaderCompile) {
		t.Fatalf("error = %v, want ErrShaderCompile", err)
	}
	var ce *glx.ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not *ShaderCompileError", err)
	}
	if ce.Kind != glx.FragmentShader {
		t.Errorf("Kind = %v, want fragment", ce.Kind)
	}
	if ce.Log != dev.FailCompile[fragmentSrc] {
		t.Errorf("Log = %q, want the device log verbatim", ce.Log)
	}
	if !strings.Contains(err.Error(), "fragment") {
		t.Errorf("Error() = %q, want it to name the stage", err.Error())
	}
	if n := dev.LiveShaders(); n != 0 {
		t.Errorf("live shaders = %d, want failed shader deleted", n)
	}
}

func TestCompileShaderNoResource(t *testing.T) {
	ctx, dev := newContext(t)
	dev.Exhausted = true
	if _, err := ctx.CompileShader(glx.VertexShader, vertexSrc); !errors.Is(err, glx.ErrShaderCompile) {
		t.Errorf("error = %v, want ErrShaderCompile", err)
	}
}

func TestCreateProgram(t *testing.T) {
	ctx, dev := newContext(t)
	p, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	if p == 0 {
		t.Fatal("CreateProgram() returned the zero handle")
	}
	if !dev.ProgramLinked(p) || !dev.ProgramValidated(p) {
		t.Error("program not linked and validated")
	}
	if n := dev.LiveShaders(); n != 0 {
		t.Errorf("live shaders = %d, want both released after link", n)
	}
	if n := dev.LivePrograms(); n != 1 {
		t.Errorf("live programs = %d, want 1", n)
	}
}

func TestCreateProgramLinkError(t *testing.T) {
	ctx, dev := newContext(t)
	dev.LinkLog = "varying vColor not written by vertex shader"

	p, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
	if p != 0 {
		t.Errorf("handle = %d, want 0", p)
	}
	var le *glx.ProgramLinkError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *ProgramLinkError", err)
	}
	if !errors.Is(err, glx.ErrProgramLink) {
		t.Error("error does not match ErrProgramLink")
	}
	if le.Log != dev.LinkLog {
		t.Errorf("Log = %q, want %q", le.Log, dev.LinkLog)
	}
	if n := dev.LiveShaders(); n != 0 {
		t.Errorf("live shaders = %d, want shaders released on link failure", n)
	}
	if n := dev.LivePrograms(); n != 0 {
		t.Errorf("live programs = %d, want failed program deleted", n)
	}
}

func TestCreateProgramValidateError(t *testing.T) {
	ctx, dev := newContext(t)
	dev.ValidateLog = "sampler type mismatch"

	p, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
	if p != 0 {
		t.Errorf("handle = %d, want 0", p)
	}
	var ve *glx.ProgramValidateError
	if !errors.As(err, &ve) || ve.Log != dev.ValidateLog {
		t.Fatalf("error = %v, want *ProgramValidateError with device log", err)
	}
	if errors.Is(err, glx.ErrProgramLink) {
		t.Error("validate failure must not match ErrProgramLink")
	}
	if n := dev.LivePrograms(); n != 0 {
		t.Errorf("live programs = %d, want 0", n)
	}
}

func TestCreateProgramCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		failing  string
		wantKind glx.ShaderKind
	}{
		{"vertex", vertexSrc, glx.VertexShader},
		{"fragment", fragmentSrc, glx.FragmentShader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev := newContext(t)
			dev.FailCompile[tt.failing] = "syntax error"

			_, err := ctx.CreateProgram(vertexSrc, fragmentSrc)
			var ce *glx.ShaderCompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *ShaderCompileError", err)
			}
			if ce.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", ce.Kind, tt.wantKind)
			}
			if n := dev.LiveShaders(); n != 0 {
				t.Errorf("live shaders = %d, want 0", n)
			}
			if n := dev.LivePrograms(); n != 0 {
				t.Errorf("live programs = %d, want no program created", n)
			}
		})
	}
}

func TestCreateProgramCallOrder(t *testing.T) {
	ctx, dev := newContext(t)
	if _, err := ctx.CreateProgram(vertexSrc, fragmentSrc); err != nil {
		t.Fatal(err)
	}

	var link, firstDelete, validate = -1, -1, -1
	for i, c := range dev.Calls() {
		switch {
		case strings.HasPrefix(c, "LinkProgram"):
			link = i
		case strings.HasPrefix(c, "DeleteShader") && firstDelete < 0:
			firstDelete = i
		case strings.HasPrefix(c, "ValidateProgram"):
			validate = i
		}
	}
	if !(link < firstDelete && firstDelete < validate) {
		t.Errorf("want link < delete shaders < validate, got %d, %d, %d", link, firstDelete, validate)
	}
}
