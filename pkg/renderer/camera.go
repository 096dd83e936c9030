package renderer

import (
	"fmt"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
)

// CameraConfig contains the pinhole camera and viewport parameters
type CameraConfig struct {
	Center         core.Vec3 // Camera position
	Width          int       // Image width in pixels
	AspectRatio    float32   // Desired width / height
	ViewportHeight float32   // Viewport height in world units
	FocalLength    float32   // Distance from camera to viewport along -Z
}

// DefaultCameraConfig returns a 16:9, 400 pixel wide camera at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:         core.NewVec3(0, 0, 0),
		Width:          400,
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// Validate reports configurations that cannot produce a viewport
func (c CameraConfig) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("camera: width must be at least 1, got %d", c.Width)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("camera: aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.ViewportHeight <= 0 {
		return fmt.Errorf("camera: viewport height must be positive, got %g", c.ViewportHeight)
	}
	if c.FocalLength <= 0 {
		return fmt.Errorf("camera: focal length must be positive, got %g", c.FocalLength)
	}
	return nil
}

// ImageHeight derives the pixel height from width and aspect ratio, never less than 1
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float32(c.Width)/c.AspectRatio))
}

// Camera generates one ray per pixel center
type Camera struct {
	center      core.Vec3
	pixel00     core.Vec3 // Center of the upper-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel on the right
	pixelDeltaV core.Vec3 // Offset to the pixel below
	width       int
	height      int
}

// NewCamera computes the viewport basis from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	width := config.Width
	height := config.ImageHeight()

	// Use the realized image ratio, not the requested one
	viewportWidth := config.ViewportHeight * (float32(width) / float32(height))

	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -config.ViewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float32(width))
	pixelDeltaV := viewportV.Divide(float32(height))

	upperLeft := config.Center.
		Subtract(core.NewVec3(0, 0, config.FocalLength)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))

	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return NewCameraFromViewport(config.Center, pixel00, pixelDeltaU, pixelDeltaV, width, height)
}

// NewCameraFromViewport builds a camera from precomputed viewport constants
func NewCameraFromViewport(center, pixel00, pixelDeltaU, pixelDeltaV core.Vec3, width, height int) (*Camera, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("camera: image must be at least 1x1, got %dx%d", width, height)
	}

	return &Camera{
		center:      center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		width:       width,
		height:      height,
	}, nil
}

// GetRay returns the ray from the camera center through pixel (i, j).
// Row j = 0 is the top of the image.
func (c *Camera) GetRay(i, j int) core.Ray {
	pixelCenter := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float32(i))).
		Add(c.pixelDeltaV.Multiply(float32(j)))

	return core.NewRay(c.center, pixelCenter.Subtract(c.center))
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Pixel00 returns the world-space center of the upper-left pixel
func (c *Camera) Pixel00() core.Vec3 { return c.pixel00 }

// PixelDeltas returns the horizontal and vertical pixel-to-pixel offsets
func (c *Camera) PixelDeltas() (u, v core.Vec3) { return c.pixelDeltaU, c.pixelDeltaV }
