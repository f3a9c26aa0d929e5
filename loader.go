package glx

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	// Decoders for the formats browsers accept as texture sources.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader fetches and decodes texture sources.
//
// LoadImage may block for as long as the source takes to arrive. It is called
// from a background goroutine, never from the caller of CreateTexture.
type ImageLoader interface {
	LoadImage(ctx context.Context, src string, mode CrossOrigin) (image.Image, error)
}

// HTTPImageLoader loads images over HTTP(S) and from the local filesystem.
//
// Sources with an http or https scheme are fetched with Client. Under
// js/wasm, relative sources are resolved against the page location first
// and the CORS mode is passed to the browser's fetch. Everything else is
// treated as a file path, with or without a file:// prefix.
type HTTPImageLoader struct {
	// Client is used for HTTP sources. Nil means http.DefaultClient.
	Client *http.Client
}

// LoadImage implements ImageLoader.
func (l *HTTPImageLoader) LoadImage(ctx context.Context, src string, mode CrossOrigin) (image.Image, error) {
	rc, err := l.open(ctx, src, mode)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func (l *HTTPImageLoader) open(ctx context.Context, src string, mode CrossOrigin) (io.ReadCloser, error) {
	src = resolveSource(src)
	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Bare paths, including Windows drive letters.
		return os.Open(src)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l.get(ctx, u.String(), mode)
	case "file":
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (l *HTTPImageLoader) get(ctx context.Context, rawURL string, mode CrossOrigin) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	setFetchMode(req, mode)

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	return resp.Body, nil
}

// toNRGBA returns img as non-premultiplied RGBA with its origin at zero.
// When maxSize is positive and the longer side exceeds it, the image is
// scaled down to fit.
func toNRGBA(img image.Image, maxSize int) *image.NRGBA {
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), maxSize)

	// Sub-images share their parent's rows, so only tightly packed
	// buffers can be uploaded as they are.
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && w == b.Dx() && h == b.Dy() &&
		n.Stride == 4*b.Dx() && len(n.Pix) == n.Stride*b.Dy() {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// fitSize scales w x h so that neither side exceeds maxSize, keeping the
// aspect ratio. Sides never drop below 1.
func fitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return w, h
}
