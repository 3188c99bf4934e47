package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func createTestGIF(w, h int) []byte {
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.White, color.Black})
	var buf bytes.Buffer
	gif.Encode(&buf, img, nil)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" || result.Ext != ".jpg" {
		t.Errorf("expected image/jpeg/.jpg, got %s/%s", result.MIME, result.Ext)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNGKeepsFormat(t *testing.T) {
	data := createTestPNG(100, 100)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/png" || result.Ext != ".png" {
		t.Errorf("expected image/png/.png, got %s/%s", result.MIME, result.Ext)
	}
}

func TestProcessGIFPassesThroughUntouched(t *testing.T) {
	data := createTestGIF(64, 64)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process GIF: %v", err)
	}
	if result.MIME != "image/gif" {
		t.Errorf("expected image/gif, got %s", result.MIME)
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("gif bytes were modified")
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	if _, err := Process(bytes.NewReader([]byte("plain text, not an image"))); err == nil {
		t.Fatal("expected rejection of non-image bytes")
	}
}

func TestProcessDownscale(t *testing.T) {
	data := createTestJPEG(2048, 2048)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageKeepsOriginalBytes(t *testing.T) {
	data := createTestPNG(32, 32)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if !bytes.Equal(result.Data, data) {
		t.Error("in-bounds image should not be re-encoded")
	}
}

func TestProcessEnforcesSizeLimit(t *testing.T) {
	// Valid png magic followed by filler beyond the limit.
	data := append(createTestPNG(8, 8), make([]byte, MaxBytes)...)
	if _, err := Process(bytes.NewReader(data)); err == nil {
		t.Fatal("expected oversize rejection")
	}
}
