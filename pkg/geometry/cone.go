package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone represents a finite cone or frustum
type Cone struct {
	BaseCenter core.Point3
	BaseRadius float64
	TopCenter  core.Point3
	TopRadius  float64 // 0 for pointed cone, >0 for frustum
	Capped     bool    // Whether to close the flat end(s) with discs

	// Cached derived values
	axis     core.Vec3   // Unit vector from base to top
	height   float64     // Distance between base and top
	tanAngle float64     // (BaseRadius - TopRadius) / height
	apex     core.Point3 // Apex of the infinite cone extended from the frustum
	caps     []*Disc
}

// NewCone creates a new cone or frustum
func NewCone(baseCenter core.Point3, baseRadius float64, topCenter core.Point3, topRadius float64, capped bool) (*Cone, error) {
	if baseRadius <= 0 {
		return nil, fmt.Errorf("base radius must be positive, got %g", baseRadius)
	}
	if topRadius < 0 {
		return nil, fmt.Errorf("top radius must be non-negative, got %g", topRadius)
	}
	if baseRadius <= topRadius {
		return nil, fmt.Errorf("base radius must be greater than top radius (got base=%g, top=%g); use a cylinder for equal radii", baseRadius, topRadius)
	}

	axisVector := topCenter.Sub(baseCenter)
	height := axisVector.Length()
	if height == 0 {
		return nil, fmt.Errorf("height must be positive (base and top centers coincide)")
	}
	axis := axisVector.Divide(height)

	// Distance from the top to where the radius would reach 0
	apex := topCenter.Offset(axis.Multiply(topRadius * height / (baseRadius - topRadius)))

	caps := []*Disc{NewDisc(baseCenter, axis.Negate(), baseRadius)}
	if topRadius > 0 {
		caps = append(caps, NewDisc(topCenter, axis, topRadius))
	}

	return &Cone{
		BaseCenter: baseCenter,
		BaseRadius: baseRadius,
		TopCenter:  topCenter,
		TopRadius:  topRadius,
		Capped:     capped,
		axis:       axis,
		height:     height,
		tanAngle:   (baseRadius - topRadius) / height,
		apex:       apex,
		caps:       caps,
	}, nil
}

// Hit tests if a ray intersects with the cone body and, if capped, its ends
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
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

// hitBody intersects the curved surface of the infinite double cone at the
// apex and keeps only points between base and top
func (c *Cone) hitBody(ray core.Ray, tMin, tMax float64) *HitRecord {
	co := ray.Origin.Sub(c.apex)

	dv := ray.Direction.Dot(c.axis)
	cov := co.Dot(c.axis)
	k := 1 + c.tanAngle*c.tanAngle

	a := ray.Direction.LengthSquared() - k*dv*dv
	if math.Abs(a) < 1e-8 {
		return nil
	}
	halfB := ray.Direction.Dot(co) - k*dv*cov
	cc := co.LengthSquared() - k*cov*cov

	discriminant := halfB*halfB - a*cc
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)

	t0, t1 := (-halfB-sqrtD)/a, (-halfB+sqrtD)/a
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	for _, t := range [2]float64{t0, t1} {
		if t <= tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		h := point.Sub(c.BaseCenter).Dot(c.axis)
		// The height bound also rejects the mirrored nappe beyond the apex
		if h < 0 || h > c.height {
			continue
		}

		radial := point.Sub(c.BaseCenter.Offset(c.axis.Multiply(h)))
		outwardNormal := radial.Normalize().Add(c.axis.Multiply(c.tanAngle)).Normalize()

		hitRecord := &HitRecord{
			T:     t,
			Point: point,
		}
		hitRecord.SetFaceNormal(ray, outwardNormal)
		return hitRecord
	}

	return nil
}
