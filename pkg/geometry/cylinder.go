package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder represents a finite cylinder, optionally closed by discs at both ends
type Cylinder struct {
	BaseCenter core.Point3
	TopCenter  core.Point3
	Radius     float64
	Capped     bool

	// Cached derived values
	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
	caps   [2]*Disc
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Point3, radius float64, capped bool) *Cylinder {
	axisVector := topCenter.Sub(baseCenter)
	axis := axisVector.Normalize()

	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		Capped:     capped,
		axis:       axis,
		height:     axisVector.Length(),
		caps: [2]*Disc{
			NewDisc(baseCenter, axis.Negate(), radius),
			NewDisc(topCenter, axis, radius),
		},
	}
}

// Hit tests if a ray intersects with the cylinder body or its caps
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	closestHit := c.hitBody(ray, tMin, tMax)
	closestT := tMax
	if closestHit != nil {
		closestT = closestHit.T
	}

	if c.Capped {
		for _, disc := range c.caps {
			if hit, isHit := disc.Hit(ray, tMin, closestT); isHit {
				closestHit = hit
				closestT = hit.T
			}
		}
	}

	return closestHit, closestHit != nil
}

// hitBody intersects the curved surface: |(P - base) - ((P - base)·V̂)V̂|² = r²
func (c *Cylinder) hitBody(ray core.Ray, tMin, tMax float64) *HitRecord {
	delta := ray.Origin.Sub(c.BaseCenter)

	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)

	a := ray.Direction.LengthSquared() - dv*dv
	if math.Abs(a) < 1e-8 {
		// Parallel to the axis: the body is never crossed
		return nil
	}
	halfB := delta.Dot(ray.Direction) - deltaV*dv
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	discriminant := halfB*halfB - a*cc
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)

	// Roots in increasing order; the first one inside the height bounds wins
	for _, t := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if t <= tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		h := point.Sub(c.BaseCenter).Dot(c.axis)
		if h < 0 || h > c.height {
			continue
		}

		axisPoint := c.BaseCenter.Offset(c.axis.Multiply(h))
		hitRecord := &HitRecord{
			T:     t,
			Point: point,
		}
		hitRecord.SetFaceNormal(ray, point.Sub(axisPoint).Normalize())
		return hitRecord
	}

	return nil
}
