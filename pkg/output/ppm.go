package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

// PPMMaxValue is the channel maximum written in the P3 header
const PPMMaxValue = 255

// WritePPM writes frame as a plain-text P3 pixmap: the header lines
// "P3", "<width> <height>" and "255", then one line per row with every
// pixel written as "r g b " (trailing space included).
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	if err := checkFrame(frame); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n%d\n", frame.Width, frame.Height, PPMMaxValue)
	for _, row := range frame.Rows {
		for _, p := range row {
			fmt.Fprintf(bw, "%d %d %d ", p.R, p.G, p.B)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: write ppm: %w", err)
	}
	return nil
}

// checkFrame rejects frames whose grid disagrees with their declared size
func checkFrame(frame *renderer.Frame) error {
	if frame == nil {
		return fmt.Errorf("output: nil frame")
	}
	if len(frame.Rows) != frame.Height {
		return fmt.Errorf("output: frame declares %d rows but has %d", frame.Height, len(frame.Rows))
	}
	for y, row := range frame.Rows {
		if len(row) != frame.Width {
			return fmt.Errorf("output: row %d has %d pixels, expected %d", y, len(row), frame.Width)
		}
	}
	return nil
}
