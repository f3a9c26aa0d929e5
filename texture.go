package glx

import (
	"context"
	"sync"
)

// CrossOrigin is the CORS mode used when fetching a texture source.
type CrossOrigin string

const (
	// CrossOriginNone leaves the request mode to the platform default.
	CrossOriginNone CrossOrigin = ""
	// CrossOriginAnonymous requests the source with CORS and no credentials.
	CrossOriginAnonymous CrossOrigin = "anonymous"
	// CrossOriginUseCredentials requests the source with CORS and credentials.
	CrossOriginUseCredentials CrossOrigin = "use-credentials"
)

// TextureOptions configures CreateTexture.
type TextureOptions struct {
	// Source is an image URL or file path. Empty creates an empty texture.
	Source string

	// CrossOrigin is the CORS mode for Source.
	CrossOrigin CrossOrigin

	// MaxSize, when positive, bounds the longer image side. Larger images
	// are downscaled before upload, keeping the aspect ratio.
	MaxSize int

	// Texture, when non-zero, is an existing texture to load into instead
	// of creating a new one. Its parameters are reset as for a new texture
	// and its contents are replaced once Source loads.
	Texture Texture
}

// PendingTexture is the result of CreateTexture. It resolves exactly once,
// after the image has been uploaded or has failed to load.
type PendingTexture struct {
	tex  Texture
	done chan struct{}
	once sync.Once
	err  error
}

func newPendingTexture(tex Texture) *PendingTexture {
	return &PendingTexture{tex: tex, done: make(chan struct{})}
}

func (p *PendingTexture) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Texture returns the texture handle. The handle exists as soon as
// CreateTexture returns; its contents are defined only after resolution.
func (p *PendingTexture) Texture() Texture { return p.tex }

// Done returns a channel that is closed when the texture resolves.
func (p *PendingTexture) Done() <-chan struct{} { return p.done }

// Err returns the load error, or nil. It is only meaningful after Done is
// closed.
func (p *PendingTexture) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the texture resolves or ctx ends. Ending ctx stops the
// wait only; the load itself keeps running.
func (p *PendingTexture) Wait(ctx context.Context) (Texture, error) {
	select {
	case <-p.done:
		if p.err != nil {
			return 0, p.err
		}
		return p.tex, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// CreateTexture creates a 2D texture with CLAMP_TO_EDGE wrapping and LINEAR
// minification.
//
// With an empty Source the returned PendingTexture is already resolved.
// Otherwise the source is loaded in the background and uploaded as RGBA8;
// the PendingTexture resolves after the upload, or with an
// *ImageDecodeError if loading fails. Loads have no timeout.
//
// Setting opts.Texture reloads an existing texture in place.
func (c *Context) CreateTexture(opts TextureOptions) *PendingTexture {
	tex := opts.Texture
	if tex == 0 {
		tex = c.dev.CreateTexture()
	}
	p := newPendingTexture(tex)
	if tex == 0 {
		p.resolve(ErrNoResource)
		return p
	}
	c.dev.BindTexture(tex)
	c.dev.TexParameter(TextureWrapS, ClampToEdge)
	c.dev.TexParameter(TextureWrapT, ClampToEdge)
	c.dev.TexParameter(TextureMinFilter, Linear)

	if opts.Source == "" {
		p.resolve(nil)
		return p
	}

	go c.loadTexture(p, opts)
	return p
}

func (c *Context) loadTexture(p *PendingTexture, opts TextureOptions) {
	img, err := c.loader.LoadImage(context.Background(), opts.Source, opts.CrossOrigin)
	if err != nil {
		c.log().Warn("glx: texture source failed", "source", opts.Source, "err", err)
		p.resolve(&ImageDecodeError{Source: opts.Source, Err: err})
		return
	}
	rgba := toNRGBA(img, opts.MaxSize)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()

	c.uploadTexture(p.tex, w, h, rgba.Pix)
	c.log().Debug("glx: texture uploaded", "source", opts.Source, "width", w, "height", h)
	p.resolve(nil)
}

// uploadTexture fills t from a background load. Binding devices get the
// bind and the upload as one step, so concurrent loads cannot swap images.
func (c *Context) uploadTexture(t Texture, width, height int, pix []byte) {
	if u, ok := c.dev.(TextureUploader); ok {
		c.execute(func() { u.UploadTexture(t, width, height, pix) })
		return
	}
	c.upload.Lock()
	defer c.upload.Unlock()
	c.execute(func() {
		c.dev.BindTexture(t)
		c.dev.TexImage2D(width, height, pix)
	})
}
