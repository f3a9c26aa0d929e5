package glx_test

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/glx"
	"github.com/gogpu/glx/glxtest"
)

func newTextureContext(t *testing.T) (*glx.Context, *glxtest.Device, *glxtest.Loader) {
	t.Helper()
	loader := glxtest.NewLoader()
	ctx, dev := newContext(t, glx.WithImageLoader(loader))
	return ctx, dev, loader
}

func waitTexture(t *testing.T, p *glx.PendingTexture) (glx.Texture, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tex, err := p.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("texture never resolved")
	}
	return tex, err
}

func TestCreateTextureEmpty(t *testing.T) {
	ctx, dev, _ := newTextureContext(t)
	p := ctx.CreateTexture(glx.TextureOptions{})

	select {
	case <-p.Done():
	default:
		t.Fatal("empty texture should be resolved on return")
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v", p.Err())
	}
	want := map[glx.TextureParam]glx.TextureValue{
		glx.TextureWrapS:     glx.ClampToEdge,
		glx.TextureWrapT:     glx.ClampToEdge,
		glx.TextureMinFilter: glx.Linear,
	}
	for param, v := range want {
		if got, ok := dev.TextureParam(p.Texture(), param); !ok || got != v {
			t.Errorf("param %d = %d, %t; want %d", param, got, ok, v)
		}
	}
	if _, _, pix := dev.TextureImage(p.Texture()); pix != nil {
		t.Error("empty texture should have no image")
	}
}

func TestCreateTextureResolvesAfterUpload(t *testing.T) {
	ctx, dev, loader := newTextureContext(t)
	const src = "img/checker.png"

	p := ctx.CreateTexture(glx.TextureOptions{Source: src, CrossOrigin: glx.CrossOriginAnonymous})
	if p.Texture() == 0 {
		t.Fatal("texture handle should exist before the load finishes")
	}
	<-loader.Started(src)
	select {
	case <-p.Done():
		t.Fatal("texture resolved before the image arrived")
	default:
	}

	loader.Complete(src, glxtest.SolidImage(2, 3, color.NRGBA{R: 255, A: 255}))
	tex, err := waitTexture(t, p)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if tex != p.Texture() {
		t.Errorf("Wait() = %d, want %d", tex, p.Texture())
	}

	w, h, pix := dev.TextureImage(tex)
	if w != 2 || h != 3 || len(pix) != 2*3*4 {
		t.Fatalf("uploaded %dx%d with %d bytes, want 2x3 RGBA", w, h, len(pix))
	}
	if pix[0] != 255 || pix[1] != 0 || pix[3] != 255 {
		t.Errorf("first pixel = %v, want opaque red", pix[:4])
	}
	if dev.Executed() != 1 {
		t.Errorf("Execute called %d times, want 1", dev.Executed())
	}
	if mode, _ := loader.Mode(src); mode != glx.CrossOriginAnonymous {
		t.Errorf("CORS mode = %q, want anonymous", mode)
	}
}

func TestCreateTextureLoadError(t *testing.T) {
	ctx, dev, loader := newTextureContext(t)
	const src = "missing.png"
	cause := errors.New("404 Not Found")

	p := ctx.CreateTexture(glx.TextureOptions{Source: src})
	loader.Fail(src, cause)

	_, err := waitTexture(t, p)
	if !errors.Is(err, glx.ErrImageDecode) {
		t.Fatalf("error = %v, want ErrImageDecode", err)
	}
	if !errors.Is(err, cause) {
		t.Error("error should unwrap to the load error")
	}
	var de *glx.ImageDecodeError
	if !errors.As(err, &de) || de.Source != src {
		t.Errorf("error = %#v, want ImageDecodeError for %q", err, src)
	}
	if p.Err() != err {
		t.Errorf("Err() = %v, want %v", p.Err(), err)
	}
	if _, _, pix := dev.TextureImage(p.Texture()); pix != nil {
		t.Error("failed load should not upload")
	}
}

func TestPendingTextureWaitCanceled(t *testing.T) {
	ctx, _, loader := newTextureContext(t)
	const src = "slow.png"
	p := ctx.CreateTexture(glx.TextureOptions{Source: src})

	wctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Wait(wctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() error = %v, want context.Canceled", err)
	}
	if p.Err() != nil {
		t.Error("canceling the wait must not fail the texture")
	}

	// The load keeps going after the wait ends.
	loader.Complete(src, glxtest.SolidImage(1, 1, color.White))
	if _, err := waitTexture(t, p); err != nil {
		t.Errorf("Wait() after completion error = %v", err)
	}
}

func TestCreateTextureMaxSize(t *testing.T) {
	ctx, dev, loader := newTextureContext(t)
	const src = "big.png"
	p := ctx.CreateTexture(glx.TextureOptions{Source: src, MaxSize: 16})
	loader.Complete(src, glxtest.SolidImage(64, 32, color.White))

	tex, err := waitTexture(t, p)
	if err != nil {
		t.Fatal(err)
	}
	if w, h, _ := dev.TextureImage(tex); w != 16 || h != 8 {
		t.Errorf("uploaded %dx%d, want 16x8", w, h)
	}
}

func TestCreateTextureNoResource(t *testing.T) {
	ctx, dev, _ := newTextureContext(t)
	dev.Exhausted = true
	p := ctx.CreateTexture(glx.TextureOptions{Source: "x.png"})
	if _, err := waitTexture(t, p); !errors.Is(err, glx.ErrNoResource) {
		t.Errorf("error = %v, want ErrNoResource", err)
	}
}

func TestCreateTextureReusesHandle(t *testing.T) {
	ctx, dev, loader := newTextureContext(t)
	first := ctx.CreateTexture(glx.TextureOptions{})
	dev.BindTexture(first.Texture())
	dev.TexParameter(glx.TextureWrapS, glx.Repeat)

	const src = "reload.png"
	p := ctx.CreateTexture(glx.TextureOptions{Source: src, Texture: first.Texture()})
	if p.Texture() != first.Texture() {
		t.Fatalf("Texture() = %d, want reused %d", p.Texture(), first.Texture())
	}
	loader.Complete(src, glxtest.SolidImage(3, 1, color.White))
	if _, err := waitTexture(t, p); err != nil {
		t.Fatal(err)
	}

	created := 0
	for _, c := range dev.Calls() {
		if strings.HasPrefix(c, "CreateTexture()") {
			created++
		}
	}
	if created != 1 {
		t.Errorf("CreateTexture called %d times, want 1", created)
	}
	if w, h, _ := dev.TextureImage(first.Texture()); w != 3 || h != 1 {
		t.Errorf("reloaded image = %dx%d, want 3x1", w, h)
	}
	if v, _ := dev.TextureParam(first.Texture(), glx.TextureWrapS); v != glx.ClampToEdge {
		t.Errorf("wrap S = %d, want ClampToEdge after reload", v)
	}
}

// concurrentLoads starts n loads with distinct widths and completes them
// all at once. It returns the textures in source order.
func concurrentLoads(t *testing.T, ctx *glx.Context, loader *glxtest.Loader, n int) []glx.Texture {
	t.Helper()
	pending := make([]*glx.PendingTexture, n)
	for i := range pending {
		pending[i] = ctx.CreateTexture(glx.TextureOptions{Source: fmt.Sprintf("tex%d.png", i)})
	}
	var wg sync.WaitGroup
	for i := range pending {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loader.Complete(fmt.Sprintf("tex%d.png", i), glxtest.SolidImage(i+1, 1, color.White))
		}()
	}
	wg.Wait()

	texs := make([]glx.Texture, n)
	for i, p := range pending {
		tex, err := waitTexture(t, p)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		texs[i] = tex
	}
	return texs
}

func TestCreateTextureConcurrentLoads(t *testing.T) {
	for round := 0; round < 20; round++ {
		ctx, dev, loader := newTextureContext(t)
		for i, tex := range concurrentLoads(t, ctx, loader, 8) {
			if w, _, _ := dev.TextureImage(tex); w != i+1 {
				t.Fatalf("round %d: texture %d has width %d, want %d", round, i, w, i+1)
			}
		}
	}
}

// uploadDevice adds handle-targeted uploads to the in-memory device.
type uploadDevice struct {
	*glxtest.Device

	mu      sync.Mutex
	uploads map[glx.Texture]int
}

func (d *uploadDevice) UploadTexture(t glx.Texture, width, height int, pix []byte) {
	d.mu.Lock()
	d.uploads[t] = width
	d.mu.Unlock()
}

func TestCreateTextureUsesUploader(t *testing.T) {
	dev := &uploadDevice{Device: glxtest.NewDevice(), uploads: make(map[glx.Texture]int)}
	loader := glxtest.NewLoader()
	ctx, err := glx.NewContext(glxtest.NewSurface(dev, glx.ContextWebGL2), glx.DefaultConfig(), glx.WithImageLoader(loader))
	if err != nil {
		t.Fatal(err)
	}

	texs := concurrentLoads(t, ctx, loader, 8)
	for i, tex := range texs {
		if got := dev.uploads[tex]; got != i+1 {
			t.Errorf("texture %d uploaded with width %d, want %d", i, got, i+1)
		}
	}
	for _, c := range dev.Calls() {
		if strings.HasPrefix(c, "TexImage2D") {
			t.Errorf("unexpected bound upload %s", c)
		}
	}
	if dev.Executed() != len(texs) {
		t.Errorf("Execute called %d times, want %d", dev.Executed(), len(texs))
	}
}
