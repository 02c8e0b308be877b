package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Point3
	normal     core.Vec3
}

// NewTriangle creates a new triangle; the normal follows the V0→V1→V2 winding
func NewTriangle(v0, v1, v2 core.Point3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.normal = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	return t
}

// Normal returns the triangle's unit normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= tMin || tParam > tMax {
		return nil, false
	}

	hitRecord := &HitRecord{
		T:     tParam,
		Point: ray.At(tParam),
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}
