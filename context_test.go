package glx_test

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/glx"
	"github.com/gogpu/glx/glxtest"
)

func newContext(t *testing.T, opts ...glx.ContextOption) (*glx.Context, *glxtest.Device) {
	t.Helper()
	dev := glxtest.NewDevice()
	ctx, err := glx.NewContext(glxtest.NewSurface(dev, glx.ContextWebGL2), glx.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	return ctx, dev
}

func TestDefaultConfig(t *testing.T) {
	cfg := glx.DefaultConfig()
	want := []string{"webgl2", "webgl", "experimental-webgl"}
	if !slices.Equal(cfg.Types, want) {
		t.Errorf("Types = %v, want %v", cfg.Types, want)
	}
	if !cfg.Attributes.Antialias {
		t.Error("Antialias should be on by default")
	}
	if cfg.Attributes != glx.DefaultAttributes() {
		t.Errorf("Attributes = %+v, want DefaultAttributes()", cfg.Attributes)
	}
}

func TestNewContextFallback(t *testing.T) {
	tests := []struct {
		name      string
		supported []string
		wantType  string
		wantTried []string
	}{
		{"webgl2 first", []string{"webgl2", "webgl"}, "webgl2", []string{"webgl2"}},
		{"falls back to webgl", []string{"webgl"}, "webgl", []string{"webgl2", "webgl"}},
		{"falls back to experimental", []string{"experimental-webgl"}, "experimental-webgl",
			[]string{"webgl2", "webgl", "experimental-webgl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := glxtest.NewDevice()
			s := glxtest.NewSurface(dev, tt.supported...)
			ctx, err := glx.NewContext(s, glx.DefaultConfig())
			if err != nil {
				t.Fatalf("NewContext() error = %v", err)
			}
			if ctx.Type() != tt.wantType {
				t.Errorf("Type() = %q, want %q", ctx.Type(), tt.wantType)
			}
			if ctx.Device() != glx.Device(dev) {
				t.Error("Device() is not the surface's device")
			}
			if got := s.Attempts(); !slices.Equal(got, tt.wantTried) {
				t.Errorf("attempts = %v, want %v", got, tt.wantTried)
			}
		})
	}
}

func TestNewContextPassesAttributes(t *testing.T) {
	s := glxtest.NewSurface(glxtest.NewDevice(), "webgl")
	cfg := glx.DefaultConfig()
	cfg.Attributes.Stencil = true
	cfg.Attributes.PowerPreference = glx.PowerHighPerformance

	ctx, err := glx.NewContext(s, cfg)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	for i, a := range s.AttributesSeen() {
		if a != cfg.Attributes {
			t.Errorf("attempt %d attributes = %+v, want %+v", i, a, cfg.Attributes)
		}
	}
	if ctx.Attributes() != cfg.Attributes {
		t.Errorf("Attributes() = %+v, want %+v", ctx.Attributes(), cfg.Attributes)
	}
}

func TestNewContextUnavailable(t *testing.T) {
	s := glxtest.NewSurface(glxtest.NewDevice())
	ctx, err := glx.NewContext(s, glx.DefaultConfig())
	if ctx != nil {
		t.Error("NewContext() returned a context with no supported type")
	}
	if !errors.Is(err, glx.ErrContextUnavailable) {
		t.Fatalf("error = %v, want ErrContextUnavailable", err)
	}
	if got := len(s.Attempts()); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestNewContextSkipsFailingTypes(t *testing.T) {
	boom := errors.New("boom")
	s := glxtest.NewSurface(glxtest.NewDevice(), "webgl")
	s.Errors["webgl2"] = boom

	ctx, err := glx.NewContext(s, glx.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	if ctx.Type() != "webgl" {
		t.Errorf("Type() = %q, want webgl", ctx.Type())
	}
}

func TestNewContextJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	s := glxtest.NewSurface(glxtest.NewDevice())
	s.Errors["webgl"] = boom

	_, err := glx.NewContext(s, glx.DefaultConfig())
	if !errors.Is(err, glx.ErrContextUnavailable) {
		t.Errorf("error = %v, want ErrContextUnavailable", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want it to wrap the per-type error", err)
	}
	if !strings.Contains(err.Error(), "webgl: boom") {
		t.Errorf("error %q should name the failing type", err)
	}
}

func TestNewContextInvalidInput(t *testing.T) {
	if _, err := glx.NewContext(nil, glx.DefaultConfig()); !errors.Is(err, glx.ErrContextUnavailable) {
		t.Errorf("nil surface: error = %v, want ErrContextUnavailable", err)
	}
	s := glxtest.NewSurface(glxtest.NewDevice(), "webgl2")
	if _, err := glx.NewContext(s, glx.Config{}); !errors.Is(err, glx.ErrContextUnavailable) {
		t.Errorf("no types: error = %v, want ErrContextUnavailable", err)
	}
	if n := len(s.Attempts()); n != 0 {
		t.Errorf("surface queried %d times with no types", n)
	}
}

func TestNewContextCustomTypes(t *testing.T) {
	s := glxtest.NewSurface(glxtest.NewDevice(), "opengl-3.3-core")
	cfg := glx.Config{Types: []string{"opengl-4.1-core", "opengl-3.3-core"}}
	ctx, err := glx.NewContext(s, cfg)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	if ctx.Type() != "opengl-3.3-core" {
		t.Errorf("Type() = %q", ctx.Type())
	}
}

func TestContextDrawer(t *testing.T) {
	ctx, dev := newContext(t)
	d, ok := ctx.Drawer()
	if !ok {
		t.Fatal("Drawer() not available on glxtest device")
	}
	if d != glx.Drawer(dev) {
		t.Error("Drawer() is not the device")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := glxtest.NewSurface(glxtest.NewDevice(), "webgl")
	if _, err := glx.NewContext(s, glx.DefaultConfig(), glx.WithLogger(l)); err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "context type unsupported") || !strings.Contains(out, "type=webgl2") {
		t.Errorf("missing fallback debug record in %q", out)
	}
	if !strings.Contains(out, "context acquired") {
		t.Errorf("missing acquired record in %q", out)
	}
}
