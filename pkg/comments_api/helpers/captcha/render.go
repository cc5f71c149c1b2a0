package captcha

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Output canvas size. Rendering quality is not load-bearing; only the stored
// hash and the returned key matter for correctness.
const (
	imageWidth  = 240
	imageHeight = 80
)

var (
	background = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	foreground = color.NRGBA{R: 0x32, G: 0x32, B: 0x32, A: 0xff}
)

// Render draws the code on a light fixed-size canvas, applies a mild blur
// and encodes the result as PNG.
func Render(code string) ([]byte, error) {
	face := basicfont.Face7x13
	textW := font.MeasureString(face, code).Ceil()

	small := image.NewRGBA(image.Rect(0, 0, textW+12, 20))
	draw.Draw(small, small.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(foreground),
		Face: face,
		Dot:  fixed.P(6, 14),
	}
	d.DrawString(code)

	img := imaging.Resize(small, imageWidth, imageHeight, imaging.NearestNeighbor)
	img = imaging.Blur(img, 1.1)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
