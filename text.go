package glx

import (
	"context"
	"fmt"
	"io"
)

// ReadText loads a text resource, typically shader source, from the same
// places HTTPImageLoader reads images from: http(s) URLs, file:// URLs and
// file paths. Under js/wasm relative names resolve against the page.
func ReadText(ctx context.Context, name string) (string, error) {
	var l HTTPImageLoader
	rc, err := l.open(ctx, name, CrossOriginNone)
	if err != nil {
		return "", fmt.Errorf("glx: read %s: %w", name, err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("glx: read %s: %w", name, err)
	}
	return string(b), nil
}
