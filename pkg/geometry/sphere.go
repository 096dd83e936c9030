package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-pinhole-raytracer/pkg/core"
)

// NoHit is returned by NearestRoot when the ray misses the sphere
const NoHit float32 = -1.0

// Hit describes where a ray meets a surface
type Hit struct {
	T      float32   // Ray parameter of the intersection
	Point  core.Vec3 // World-space hit point
	Normal core.Vec3 // Unit outward surface normal
}

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// roots solves |origin + t*dir - center|² = radius² for t.
// near <= far whenever ok is true. Degenerate spheres (radius <= 0) never hit.
func (s Sphere) roots(ray core.Ray) (near, far float32, ok bool) {
	if s.Radius <= 0 {
		return 0, 0, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := -2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	return (-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a), true
}

// NearestRoot returns the smaller root of the ray/sphere quadratic, or NoHit
// when the discriminant is negative. Roots behind the ray origin are returned
// as-is, so a negative result does not always mean a miss.
func (s Sphere) NearestRoot(ray core.Ray) float32 {
	near, _, ok := s.roots(ray)
	if !ok {
		return NoHit
	}
	return near
}

// Hit returns the nearest intersection with tMin < t <= tMax
func (s Sphere) Hit(ray core.Ray, tMin, tMax float32) (Hit, bool) {
	near, far, ok := s.roots(ray)
	if !ok {
		return Hit{}, false
	}

	// Try the closer intersection point first
	root := near
	if root <= tMin || root > tMax {
		root = far
		if root <= tMin || root > tMax {
			return Hit{}, false
		}
	}

	point := ray.At(root)
	return Hit{
		T:      root,
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
	}, true
}

// Intersect reports the nearer root of the quadratic when it lies in front of
// the ray origin (t > 0). The farther root is never used, so a ray starting
// inside or on the sphere does not hit it.
func (s Sphere) Intersect(ray core.Ray) (Hit, bool) {
	near, _, ok := s.roots(ray)
	if !ok || near <= 0 {
		return Hit{}, false
	}

	point := ray.At(near)
	return Hit{
		T:      near,
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
	}, true
}
