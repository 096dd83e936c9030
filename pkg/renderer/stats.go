package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose ray hit the sphere
	MissPixels  int           // Pixels shaded by the background
	Rows        int           // Rows completed
	Workers     int           // Goroutines used
	Duration    time.Duration // Wall-clock render time
}

// RowStats tracks hits and misses within a single row
type RowStats struct {
	Hits   int
	Misses int
}

// merge folds a completed row into the totals
func (s *RenderStats) merge(row RowStats) {
	s.HitPixels += row.Hits
	s.MissPixels += row.Misses
	s.TotalPixels += row.Hits + row.Misses
	s.Rows++
}

// HitRatio returns the fraction of pixels that hit the sphere
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
