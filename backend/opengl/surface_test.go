//go:build !js

package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/glx"
)

func hintValue(hints []hint, key glfw.Hint) (int, bool) {
	for _, h := range hints {
		if h.key == key {
			return h.value, true
		}
	}
	return 0, false
}

func TestWindowHints(t *testing.T) {
	tests := []struct {
		name         string
		contextType  string
		attrs        glx.Attributes
		major, minor int
		samples      int
		depth        int
	}{
		{"4.1 defaults", ContextGL41Core, glx.DefaultAttributes(), 4, 1, 4, 24},
		{"3.3 defaults", ContextGL33Core, glx.DefaultAttributes(), 3, 3, 4, 24},
		{"no antialias", ContextGL33Core, glx.Attributes{Alpha: true}, 3, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints, ok := windowHints(tt.contextType, tt.attrs)
			if !ok {
				t.Fatalf("windowHints(%q) not ok", tt.contextType)
			}
			if v, _ := hintValue(hints, glfw.ContextVersionMajor); v != tt.major {
				t.Errorf("major = %d, want %d", v, tt.major)
			}
			if v, _ := hintValue(hints, glfw.ContextVersionMinor); v != tt.minor {
				t.Errorf("minor = %d, want %d", v, tt.minor)
			}
			if v, _ := hintValue(hints, glfw.Samples); v != tt.samples {
				t.Errorf("samples = %d, want %d", v, tt.samples)
			}
			if v, _ := hintValue(hints, glfw.DepthBits); v != tt.depth {
				t.Errorf("depth bits = %d, want %d", v, tt.depth)
			}
			if v, _ := hintValue(hints, glfw.OpenGLProfile); v != glfw.OpenGLCoreProfile {
				t.Errorf("profile = %d, want core", v)
			}
		})
	}
}

func TestWindowHintsUnknownType(t *testing.T) {
	if _, ok := windowHints("webgl2", glx.DefaultAttributes()); ok {
		t.Error("webgl2 should not map to a desktop context")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Types) != 2 || cfg.Types[0] != ContextGL41Core || cfg.Types[1] != ContextGL33Core {
		t.Errorf("Types = %v", cfg.Types)
	}
	if !cfg.Attributes.Antialias {
		t.Error("antialias should default on")
	}
}

func TestEnumMapping(t *testing.T) {
	if bufferUsage(glx.BufferUsage(0)) != bufferUsage(glx.StaticDraw) {
		t.Error("zero usage should map to STATIC_DRAW")
	}
	if bufferTarget(glx.ElementArrayBuffer) == bufferTarget(glx.ArrayBuffer) {
		t.Error("targets should differ")
	}
	if _, ok := textureValue(glx.TextureValue(99)); ok {
		t.Error("unknown texture value mapped")
	}
	if clearMask(0) != 0 {
		t.Error("empty clear mask should stay empty")
	}
	if clearMask(glx.ColorBufferBit|glx.DepthBufferBit) == clearMask(glx.ColorBufferBit) {
		t.Error("depth bit dropped")
	}
}
