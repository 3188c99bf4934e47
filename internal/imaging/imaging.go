package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for stored jpeg/png images.
const MaxDimension = 1600

// MaxBytes is the per-file upload size limit.
const MaxBytes = 5 << 20

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Result contains the processed image data and its file extension.
type Result struct {
	Data []byte
	MIME string
	Ext  string
}

// Process reads image data, validates the format by sniffing bytes (the
// client-declared content type is never trusted), enforces the size limit,
// and downscales oversized jpeg/png input. Gif bytes are stored untouched so
// animations survive.
func Process(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxBytes {
		return nil, fmt.Errorf("image exceeds the %d MB limit", MaxBytes>>20)
	}

	detected := http.DetectContentType(data)
	ext, ok := AllowedMIME[detected]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and GIF accepted)", detected)
	}

	if detected == "image/gif" {
		return &Result{Data: data, MIME: detected, Ext: ext}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	scaled := downscale(img, MaxDimension)
	if scaled == img {
		// Within bounds: keep the original bytes and format.
		return &Result{Data: data, MIME: detected, Ext: ext}, nil
	}

	var buf bytes.Buffer
	if detected == "image/png" {
		if err := png.Encode(&buf, scaled); err != nil {
			return nil, fmt.Errorf("encoding PNG: %w", err)
		}
	} else {
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("encoding JPEG: %w", err)
		}
	}
	return &Result{Data: buf.Bytes(), MIME: detected, Ext: ext}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim, preserving
// aspect ratio. Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
