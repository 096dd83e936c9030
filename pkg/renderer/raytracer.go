package renderer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
	"github.com/df07/go-pinhole-raytracer/pkg/geometry"
)

// WriterLogger implements core.Logger by writing to an io.Writer
type WriterLogger struct {
	w io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

// Raytracer casts one ray per pixel against a single sphere
type Raytracer struct {
	sphere  geometry.Sphere
	camera  *Camera
	workers int
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. It renders with one worker per CPU
// and logs nothing until configured otherwise.
func NewRaytracer(sphere geometry.Sphere, camera *Camera) *Raytracer {
	return &Raytracer{
		sphere:  sphere,
		camera:  camera,
		workers: 0,
		logger:  core.NopLogger{},
	}
}

// SetWorkers sets the number of row workers (<= 0 means one per CPU, 1 renders rows in order)
func (rt *Raytracer) SetWorkers(workers int) {
	rt.workers = workers
}

// SetLogger replaces the logger used for render progress
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// PixelColor returns the unquantized color of pixel (i, j)
func (rt *Raytracer) PixelColor(i, j int) core.Vec3 {
	return Shade(rt.camera.GetRay(i, j), rt.sphere)
}

// RenderRow shades and quantizes row j into dst, which must hold the image width
func (rt *Raytracer) RenderRow(j int, dst []Pixel) RowStats {
	var stats RowStats
	for i := range dst {
		color, isHit := shade(rt.camera.GetRay(i, j), rt.sphere)
		if isHit {
			stats.Hits++
		} else {
			stats.Misses++
		}
		dst[i] = QuantizeColor(color)
	}
	return stats
}

// Render produces the full frame. Rows are distributed across the worker
// pool; the result does not depend on the number of workers.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	frame := NewFrame(width, height)

	pool := NewWorkerPool(rt, rt.workers)
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	rt.logger.Printf("Rendering %dx%d image using %d workers...\n", width, height, stats.Workers)

	pool.Start(ctx)
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j, Frame: frame})
	}

	var renderErr error
	for i := 0; i < height; i++ {
		result := <-pool.Results()
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if renderErr != nil {
		return nil, stats, fmt.Errorf("render stopped after %d of %d rows: %w", stats.Rows, height, renderErr)
	}

	rt.logger.Printf("Render completed in %v (%d hit, %d background pixels, %.1f%% coverage)\n",
		stats.Duration, stats.HitPixels, stats.MissPixels, 100*stats.HitRatio())

	return frame, stats, nil
}
