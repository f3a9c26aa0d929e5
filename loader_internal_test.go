package glx

import (
	"image"
	"image/color"
	"testing"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 50, 50, 25},
		{50, 100, 50, 25, 50},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitSize(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{R: 128, A: 128})

	got := toNRGBA(src, 0)
	if got.Rect != image.Rect(0, 0, 2, 1) {
		t.Fatalf("Rect = %v, want origin at zero", got.Rect)
	}
	if c := got.NRGBAAt(0, 0); c.R != 255 || c.A != 128 {
		t.Errorf("pixel = %v, want un-premultiplied red at half alpha", c)
	}

	n := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if toNRGBA(n, 0) != n {
		t.Error("NRGBA at origin should be returned as is")
	}
}

func TestToNRGBASubImage(t *testing.T) {
	parent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			parent.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"narrow", image.Rect(0, 0, 2, 2)},
		{"full width", image.Rect(0, 0, 4, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := parent.SubImage(tt.r).(*image.NRGBA)
			got := toNRGBA(sub, 0)
			w, h := tt.r.Dx(), tt.r.Dy()
			if got.Stride != 4*w || len(got.Pix) != 4*w*h {
				t.Fatalf("Stride = %d, len(Pix) = %d; want tight %dx%d rows", got.Stride, len(got.Pix), w, h)
			}
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					i := y*got.Stride + x*4
					if got.Pix[i] != uint8(x) || got.Pix[i+1] != uint8(y) {
						t.Errorf("pixel (%d, %d) = %v", x, y, got.Pix[i:i+4])
					}
				}
			}
		})
	}
}
