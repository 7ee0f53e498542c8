package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// Thumbnailer produces JPEG thumbnails for uploaded photos.
type Thumbnailer struct{}

// NewThumbnailer creates a Thumbnailer.
func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{}
}

// Fit decodes the source image and scales it down to fit within
// maxWidth x maxHeight, returning the result as a JPEG stream.
func (t *Thumbnailer) Fit(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf, nil
}
