package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Point3 // One corner of the quad
	U      core.Vec3   // First edge vector
	V      core.Vec3   // Second edge vector
	Normal core.Vec3   // Unit normal (U × V)
	D      float64     // Plane equation constant: n · p = d
	W      core.Vec3   // Cached n / (n · (U × V)) for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner core.Point3, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner.Vec()),
		W:      cross.Divide(cross.Dot(cross)),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Vec().Dot(q.Normal)) / denominator
	if t <= tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Sub(q.Corner)

	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:     t,
		Point: hitPoint,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}
