package renderer

import (
	"github.com/df07/go-pinhole-raytracer/pkg/core"
	"github.com/df07/go-pinhole-raytracer/pkg/geometry"
)

// Background gradient endpoints
var (
	White   = core.NewVec3(1.0, 1.0, 1.0)
	SkyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// Shade returns the color seen along ray: the sphere's surface normal mapped
// into [0,1] on a hit, otherwise the background gradient.
func Shade(ray core.Ray, sphere geometry.Sphere) core.Vec3 {
	color, _ := shade(ray, sphere)
	return color
}

// shade also reports whether the sphere was hit
func shade(ray core.Ray, sphere geometry.Sphere) (core.Vec3, bool) {
	if hit, isHit := sphere.Intersect(ray); isHit {
		return NormalColor(hit.Normal), true
	}
	return BackgroundGradient(ray), false
}

// NormalColor maps each component of a unit normal from [-1,1] to [0,1]
func NormalColor(normal core.Vec3) core.Vec3 {
	return normal.Add(core.One()).Multiply(0.5)
}

// BackgroundGradient blends white (looking down) to sky blue (looking up)
// by the normalized ray's vertical component.
func BackgroundGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return White.Lerp(SkyBlue, a)
}
