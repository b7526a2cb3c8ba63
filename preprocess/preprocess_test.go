package preprocess

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG renders a light panel with a dark bar, roughly what a digit stroke
// on a backlit display reduces to.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(200)
			if x > w/3 && x < w/2 && y > h/4 && y < 3*h/4 {
				v = 30
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessRejectsUndecodableInput(t *testing.T) {
	_, err := New().Process([]byte("not an image at all"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !errors.Is(err, ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}

func TestProcessProducesBinaryImage(t *testing.T) {
	// Tall enough that no upscale (and its interpolated grays) happens.
	out, err := New().Process(testPNG(t, 200, 600))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out.Bounds().Dy(); got != 600 {
		t.Fatalf("unexpected height: %d", got)
	}
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d not binary: %d", i, v)
		}
	}
}

func TestProcessUpscalesShortCaptures(t *testing.T) {
	out, err := New().Process(testPNG(t, 120, 60))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out.Bounds().Dy(); got != DefaultTargetHeight {
		t.Fatalf("expected height %d, got %d", DefaultTargetHeight, got)
	}
	// Isotropic: width scales by the same factor.
	if got := out.Bounds().Dx(); got != 1000 {
		t.Fatalf("expected width 1000, got %d", got)
	}
}

func TestProcessCustomTargetHeight(t *testing.T) {
	out, err := NewWithTargetHeight(100).Process(testPNG(t, 80, 40))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out.Bounds().Dy(); got != 100 {
		t.Fatalf("expected height 100, got %d", got)
	}
	if out, err = NewWithTargetHeight(0).Process(testPNG(t, 80, 600)); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := out.Bounds().Dy(); got != 600 {
		t.Fatalf("expected tall capture untouched, got height %d", got)
	}
}

func TestProcessDeterministic(t *testing.T) {
	data := testPNG(t, 150, 90)
	p := New()
	a, err := p.Process(data)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	b, err := p.Process(data)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("repeated runs differ")
	}
}
