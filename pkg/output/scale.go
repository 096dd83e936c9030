package output

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

// Upscale enlarges img by an integer factor. Nearest-neighbour keeps each
// rendered pixel a crisp block; smooth uses Catmull-Rom.
func Upscale(img image.Image, factor int, smooth bool) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))

	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// frameFromImage quantizes an image back into a frame, dropping alpha
func frameFromImage(img image.Image) *renderer.Frame {
	b := img.Bounds()
	frame := renderer.NewFrame(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			frame.Rows[y][x] = renderer.Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return frame
}
