package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
)

// QuantizeScale maps [0,1] onto [0,255] under truncation; 1.0 lands on 255.
const QuantizeScale float32 = 255.999

// Pixel is an 8-bit RGB color
type Pixel struct {
	R, G, B uint8
}

// Quantize converts a color channel in [0,1] to [0,255].
// Out-of-range input is clamped first.
func Quantize(c float32) uint8 {
	return toByte(max(0, min(1, c)))
}

// QuantizeColor clamps each channel to [0,1] and converts to an 8-bit pixel
func QuantizeColor(colorVec core.Vec3) Pixel {
	c := colorVec.Clamp(0, 1)
	return Pixel{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
	}
}

// toByte expects c already in [0,1]
func toByte(c float32) uint8 {
	return uint8(math32.Floor(QuantizeScale * c))
}

// Frame is a row-major pixel grid; Rows[0] is the top of the image
type Frame struct {
	Width  int
	Height int
	Rows   [][]Pixel
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	rows := make([][]Pixel, height)
	for y := range rows {
		rows[y] = make([]Pixel, width)
	}
	return &Frame{Width: width, Height: height, Rows: rows}
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) Pixel {
	return f.Rows[y][x]
}

// ToImage converts the frame to an opaque NRGBA image
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y, row := range f.Rows {
		for x, p := range row {
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}
