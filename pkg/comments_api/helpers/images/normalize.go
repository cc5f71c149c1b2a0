// Package images re-encodes sniffed image uploads: orientation fix, bounding
// box downscale, format-preserving re-encode.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

const (
	// MaxWidth and MaxHeight form the bounding box every stored image must
	// fit inside. Aspect ratio is preserved; images are never upscaled.
	MaxWidth  = 320
	MaxHeight = 240

	jpegQuality = 85
)

// ErrUnsupportedFormat marks a decodable image whose format is outside the
// allow-list. Callers turn this into a user-facing validation error.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Normalized is the outcome of a successful normalization.
type Normalized struct {
	Data        []byte
	Width       int
	Height      int
	Size        int64
	ContentType string
	Ext         string
}

// Normalize validates the detected format against the allow-list, corrects
// EXIF orientation, downsizes into the bounding box and re-encodes to the
// original format. Animated GIFs collapse to their first frame; animation is
// deliberately not preserved.
func Normalize(data []byte, format string) (*Normalized, error) {
	switch format {
	case "jpeg", "png", "gif":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	if format == "jpeg" {
		img = fixOrientation(img, data)
	}

	if b := img.Bounds(); b.Dx() > MaxWidth || b.Dy() > MaxHeight {
		img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	var contentType, ext string
	switch format {
	case "jpeg":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
		contentType, ext = "image/jpeg", ".jpg"
	case "png":
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
		contentType, ext = "image/png", ".png"
	case "gif":
		err = imaging.Encode(&buf, img, imaging.GIF)
		contentType, ext = "image/gif", ".gif"
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	b := img.Bounds()
	return &Normalized{
		Data:        buf.Bytes(),
		Width:       b.Dx(),
		Height:      b.Dy(),
		Size:        int64(buf.Len()),
		ContentType: contentType,
		Ext:         ext,
	}, nil
}

// fixOrientation applies the EXIF orientation tag, if any. Re-encoding drops
// the tag from the output, so the rotation must be baked into the pixels.
func fixOrientation(img image.Image, raw []byte) image.Image {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil {
		return img
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
