package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Point3 // Center of the disc
	Normal core.Vec3   // Unit normal (pointing "up" from the disc)
	Radius float64
}

// NewDisc creates a new disc
func NewDisc(center core.Point3, normal core.Vec3, radius float64) *Disc {
	return &Disc{
		Center: center,
		Normal: normal.Normalize(),
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return nil, false
	}

	t := d.Normal.Dot(d.Center.Sub(ray.Origin)) / denom
	if t <= tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	if hitPoint.Sub(d.Center).LengthSquared() > d.Radius*d.Radius {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:     t,
		Point: hitPoint,
	}
	hitRecord.SetFaceNormal(ray, d.Normal)

	return hitRecord, true
}
