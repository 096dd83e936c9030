package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

// Options controls how a frame is written
type Options struct {
	Scale  int  // Integer upscale factor; values below 2 write the frame as rendered
	Smooth bool // Use Catmull-Rom instead of nearest-neighbour when scaling
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format, opts Options) error {
	if err := checkFrame(frame); err != nil {
		return err
	}

	var img image.Image = frame.ToImage()
	if opts.Scale > 1 {
		img = Upscale(img, opts.Scale, opts.Smooth)
	}

	var err error
	switch format {
	case FormatPPM:
		if opts.Scale > 1 {
			frame = frameFromImage(img)
		}
		return WritePPM(w, frame)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}

	if err != nil {
		return fmt.Errorf("output: encode %s: %w", format, err)
	}
	return nil
}

// Save writes frame to path, creating parent directories as needed
func Save(path string, frame *renderer.Frame, format Format, opts Options) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("output: create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("output: close %s: %w", path, cerr)
		}
	}()

	return Encode(f, frame, format, opts)
}
