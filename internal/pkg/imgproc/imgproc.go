// Package imgproc normalizes uploaded images to the fixed dimensions the
// registration system expects. The transformation is pure: raw bytes in,
// re-encoded JPEG bytes out, no side effects.
package imgproc

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/apperrors"
)

// JPEGQuality is the fixed quality setting for re-encoded images.
const JPEGQuality = 85

// Image is a processed image buffer with its declared content type.
type Image struct {
	Data        []byte
	ContentType string
}

// Normalize scales and center-crops the input to exactly width x height
// (cover-fit: aspect ratio preserved, overflow cropped, never letterboxed) and
// re-encodes it as JPEG. It fails with apperrors.ErrImageProcessing when the
// input is not decodable or encoding fails; callers decide the fallback policy.
func Normalize(data []byte, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid target dimensions %dx%d", apperrors.ErrImageProcessing, width, height)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", apperrors.ErrImageProcessing, err)
	}

	filled := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", apperrors.ErrImageProcessing, err)
	}

	return &Image{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}
