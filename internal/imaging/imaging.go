// Package imaging prepares lot photos for storage: it accepts JPEG or PNG,
// bounds the decoded size, downscales large images and stores everything as
// JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
)

const (
	// MaxDimension is the longest side of a stored photo.
	MaxDimension = 1024
	// MaxUploadBytes caps the raw upload.
	MaxUploadBytes = 10 << 20
	// maxSourcePixels guards the decoder against huge canvases.
	maxSourcePixels = 40_000_000

	jpegQuality = 85
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is an encoded image ready to store on a lot.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// PreparePhoto reads an upload, checks it by its bytes rather than any
// client header, and returns it as a JPEG no larger than MaxDimension.
// Bad input yields a VALIDATION error.
func PreparePhoto(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, domainerrors.Validation(fmt.Sprintf("photo exceeds %d MB", MaxUploadBytes>>20))
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, domainerrors.Validation("unsupported photo format " + detected + ", use JPEG or PNG")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domainerrors.Validation("photo could not be read").WithCause(err)
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, domainerrors.Validation(fmt.Sprintf("photo is %dx%d, too large to process", cfg.Width, cfg.Height))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domainerrors.Validation("photo could not be read").WithCause(err)
	}

	out := fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := out.Bounds()
	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// fit scales img so neither side exceeds maxDim, keeping the aspect ratio,
// and flattens it onto white so transparent PNG areas do not turn black.
func fit(img image.Image, maxDim int) image.Image {
	src := img.Bounds()
	w, h := targetSize(src.Dx(), src.Dy(), maxDim)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}

func targetSize(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w > h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	return w, h
}
