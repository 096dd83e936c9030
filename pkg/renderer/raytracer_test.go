package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// recordingLogger captures log lines for assertions
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func newTestRaytracer(t *testing.T, width int) *Raytracer {
	t.Helper()
	camera, err := NewCamera(squareCameraConfig(width))
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return NewRaytracer(defaultSphere(), camera)
}

func TestRaytracer_Render_2x2Baseline(t *testing.T) {
	rt := newTestRaytracer(t, 2)

	frame, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	expected := [][]Pixel{
		{{165, 201, 255}, {165, 201, 255}},
		{{218, 233, 255}, {218, 233, 255}},
	}
	assertFrame(t, frame, expected)

	if stats.TotalPixels != 4 || stats.MissPixels != 4 || stats.HitPixels != 0 {
		t.Errorf("Expected 4 background pixels, got %+v", stats)
	}
	if stats.Rows != 2 {
		t.Errorf("Expected 2 rows, got %d", stats.Rows)
	}
}

func TestRaytracer_Render_3x3Baseline(t *testing.T) {
	rt := newTestRaytracer(t, 3)

	frame, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	expected := [][]Pixel{
		{{160, 198, 255}, {156, 196, 255}, {160, 198, 255}},
		{{191, 217, 255}, {127, 127, 255}, {191, 217, 255}},
		{{223, 236, 255}, {227, 238, 255}, {223, 236, 255}},
	}
	assertFrame(t, frame, expected)

	if stats.HitPixels != 1 || stats.MissPixels != 8 {
		t.Errorf("Expected only the center pixel to hit, got %+v", stats)
	}
	if ratio := stats.HitRatio(); ratio != 1.0/9.0 {
		t.Errorf("Expected hit ratio 1/9, got %f", ratio)
	}
}

func TestRaytracer_Render_WorkerCountDoesNotChangeOutput(t *testing.T) {
	reference := newTestRaytracer(t, 64)
	reference.SetWorkers(1)
	want, _, err := reference.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, workers := range []int{2, 7, 0, 200} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			rt := newTestRaytracer(t, 64)
			rt.SetWorkers(workers)
			got, stats, err := rt.Render(context.Background())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			assertFrame(t, got, want.Rows)
			if stats.TotalPixels != 64*64 {
				t.Errorf("Expected %d pixels, got %d", 64*64, stats.TotalPixels)
			}
		})
	}
}

func TestRaytracer_Render_Deterministic(t *testing.T) {
	first, _, err := newTestRaytracer(t, 16).Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, _, err := newTestRaytracer(t, 16).Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertFrame(t, second, first.Rows)
}

func TestRaytracer_Render_Cancelled(t *testing.T) {
	rt := newTestRaytracer(t, 32)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected nil frame on cancellation")
	}
}

func TestRaytracer_PixelColor_MatchesFrame(t *testing.T) {
	rt := newTestRaytracer(t, 3)
	frame, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := QuantizeColor(rt.PixelColor(1, 1)); got != frame.At(1, 1) {
		t.Errorf("Expected %v, got %v", frame.At(1, 1), got)
	}
}

func TestRaytracer_Logging(t *testing.T) {
	rt := newTestRaytracer(t, 4)
	logger := &recordingLogger{}
	rt.SetLogger(logger)
	rt.SetWorkers(2)

	_, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(logger.lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d: %q", len(logger.lines), logger.lines)
	}
	if !strings.Contains(logger.lines[0], "4x4") || !strings.Contains(logger.lines[0], "2 workers") {
		t.Errorf("Unexpected start line %q", logger.lines[0])
	}
	if !strings.Contains(logger.lines[1], "Render completed") {
		t.Errorf("Unexpected completion line %q", logger.lines[1])
	}
	coverage := fmt.Sprintf("%.1f%% coverage", 100*stats.HitRatio())
	if !strings.Contains(logger.lines[1], coverage) {
		t.Errorf("Expected completion line to report %q, got %q", coverage, logger.lines[1])
	}
}

func assertFrame(t *testing.T, frame *Frame, expected [][]Pixel) {
	t.Helper()
	if frame.Height != len(expected) || len(frame.Rows) != len(expected) {
		t.Fatalf("Expected %d rows, got height %d with %d rows", len(expected), frame.Height, len(frame.Rows))
	}
	for y, row := range expected {
		if len(frame.Rows[y]) != len(row) {
			t.Fatalf("Row %d: expected %d pixels, got %d", y, len(row), len(frame.Rows[y]))
		}
		for x, want := range row {
			if got := frame.Rows[y][x]; got != want {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}
