package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
	"github.com/df07/go-pinhole-raytracer/pkg/geometry"
	"github.com/df07/go-pinhole-raytracer/pkg/output"
	"github.com/df07/go-pinhole-raytracer/pkg/renderer"
)

// Config holds camera, scene and output settings.
type Config struct {
	// Camera / viewport
	Width          int        `json:"width"`
	AspectRatio    float32    `json:"aspect_ratio"`
	ViewportHeight float32    `json:"viewport_height"`
	FocalLength    float32    `json:"focal_length"`
	Camera         [3]float32 `json:"camera"`

	// Scene
	Sphere *SphereConfig `json:"sphere,omitempty"`

	// Output
	OutputDir string `json:"output_dir"`
	Output    string `json:"output"`
	Format    string `json:"format"`
	Scale     int    `json:"scale"`
	Smooth    bool   `json:"smooth"`

	// Rendering
	Workers int `json:"workers"`
}

// SphereConfig describes the single sphere in the scene
type SphereConfig struct {
	Center [3]float32 `json:"center"`
	Radius float32    `json:"radius"`
}

// DefaultSphere is the unit-diameter sphere one unit in front of the camera
var DefaultSphere = SphereConfig{Center: [3]float32{0, 0, -1}, Radius: 0.5}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	AspectRatio float64
	Output      string
	Format      string
	Workers     int
	Scale       int
	Smooth      bool
	Now         time.Time // Timestamp for the default output name; zero means time.Now()
}

// Resolve applies CLI overrides, then fills any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.AspectRatio > 0 {
		c.AspectRatio = float32(flags.AspectRatio)
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Smooth {
		c.Smooth = true
	}

	// Camera defaults
	defaults := renderer.DefaultCameraConfig()
	if c.Width <= 0 {
		c.Width = defaults.Width
	}
	if c.AspectRatio <= 0 {
		c.AspectRatio = defaults.AspectRatio
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = defaults.ViewportHeight
	}
	if c.FocalLength <= 0 {
		c.FocalLength = defaults.FocalLength
	}
	if c.Sphere == nil {
		sphere := DefaultSphere
		c.Sphere = &sphere
	}

	// Output defaults: an explicit format wins, then the output extension, then PPM.
	// An extension that names no supported format is an error.
	if c.Format == "" && filepath.Ext(c.Output) != "" {
		f, err := output.FormatFromPath(c.Output)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		c.Format = string(f)
	}
	if c.Format == "" {
		c.Format = string(output.FormatPPM)
	}
	format, err := output.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Format = string(format)

	if c.Output == "" {
		if c.OutputDir == "" {
			c.OutputDir = "output"
		}
		now := flags.Now
		if now.IsZero() {
			now = time.Now()
		}
		name := fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), format.Extension())
		c.Output = filepath.Join(c.OutputDir, name)
	} else if c.OutputDir != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(c.OutputDir, c.Output)
	}

	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	return c.CameraConfig().Validate()
}

// CameraConfig returns the renderer camera settings
func (c Config) CameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:         vec(c.Camera),
		Width:          c.Width,
		AspectRatio:    c.AspectRatio,
		ViewportHeight: c.ViewportHeight,
		FocalLength:    c.FocalLength,
	}
}

// SceneSphere returns the configured sphere, or DefaultSphere if none is set
func (c Config) SceneSphere() geometry.Sphere {
	s := DefaultSphere
	if c.Sphere != nil {
		s = *c.Sphere
	}
	return geometry.NewSphere(vec(s.Center), s.Radius)
}

// OutputFormat returns the resolved output format
func (c Config) OutputFormat() output.Format {
	return output.Format(c.Format)
}

// OutputOptions returns the writer options
func (c Config) OutputOptions() output.Options {
	return output.Options{Scale: c.Scale, Smooth: c.Smooth}
}

func vec(v [3]float32) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
