package glx_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/glx"
	"github.com/gogpu/glx/glxtest"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHTTPImageLoader(t *testing.T) {
	data := encodePNG(t, glxtest.SolidImage(4, 2, color.NRGBA{G: 255, A: 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		case "/garbage.png":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	l := &glx.HTTPImageLoader{Client: srv.Client()}
	ctx := context.Background()

	img, err := l.LoadImage(ctx, srv.URL+"/ok.png", glx.CrossOriginNone)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 4x2", b)
	}

	if _, err := l.LoadImage(ctx, srv.URL+"/missing.png", glx.CrossOriginNone); err == nil ||
		!strings.Contains(err.Error(), "404") {
		t.Errorf("missing image error = %v, want 404", err)
	}
	if _, err := l.LoadImage(ctx, srv.URL+"/garbage.png", glx.CrossOriginNone); err == nil {
		t.Error("garbage image decoded without error")
	}
}

func TestHTTPImageLoaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	if err := os.WriteFile(path, encodePNG(t, glxtest.SolidImage(3, 3, color.White)), 0o600); err != nil {
		t.Fatal(err)
	}

	var l glx.HTTPImageLoader
	for _, src := range []string{path, "file://" + filepath.ToSlash(path)} {
		img, err := l.LoadImage(context.Background(), src, glx.CrossOriginNone)
		if err != nil {
			t.Errorf("LoadImage(%q) error = %v", src, err)
			continue
		}
		if img.Bounds().Dx() != 3 {
			t.Errorf("LoadImage(%q) width = %d, want 3", src, img.Bounds().Dx())
		}
	}

	if _, err := l.LoadImage(context.Background(), filepath.Join(dir, "nope.png"), glx.CrossOriginNone); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
	if _, err := l.LoadImage(context.Background(), "ftp://example.com/a.png", glx.CrossOriginNone); err == nil {
		t.Error("unsupported scheme should fail")
	}
}

func TestCreateTextureFromHTTP(t *testing.T) {
	data := encodePNG(t, glxtest.SolidImage(2, 2, color.NRGBA{B: 255, A: 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	t.Cleanup(srv.Close)

	ctx, dev := newContext(t, glx.WithImageLoader(&glx.HTTPImageLoader{Client: srv.Client()}))
	tex, err := waitTexture(t, ctx.CreateTexture(glx.TextureOptions{Source: srv.URL + "/blue.png"}))
	if err != nil {
		t.Fatalf("texture error = %v", err)
	}
	w, h, pix := dev.TextureImage(tex)
	if w != 2 || h != 2 || pix[2] != 255 {
		t.Errorf("uploaded %dx%d first pixel %v, want 2x2 blue", w, h, pix[:4])
	}
}

func TestReadText(t *testing.T) {
	const src = "#version 300 es\nvoid main() {}\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(src))
	}))
	t.Cleanup(srv.Close)

	got, err := glx.ReadText(context.Background(), srv.URL+"/quad.vert")
	if err != nil || got != src {
		t.Errorf("ReadText(http) = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "quad.frag")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = glx.ReadText(context.Background(), path)
	if err != nil || got != src {
		t.Errorf("ReadText(file) = %q, %v", got, err)
	}

	if _, err := glx.ReadText(context.Background(), path+".missing"); err == nil {
		t.Error("ReadText of a missing file should fail")
	}
}
