package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Box represents a rectangular box made up of 6 quads with optional rotation
type Box struct {
	Center   core.Point3 // Center point of the box
	Size     core.Vec3   // Half-extents along each local axis
	Rotation core.Vec3   // Rotation angles in radians around X, Y, Z
	faces    [6]*Quad
}

// NewBox creates a box. Size holds half-extents, so (1,1,1) is a 2x2x2 box.
// Rotation is applied around X, then Y, then Z.
func NewBox(center core.Point3, size, rotation core.Vec3) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a box without rotation
func NewAxisAlignedBox(center core.Point3, size core.Vec3) *Box {
	return NewBox(center, size, core.Vec3{})
}

// rotate applies rotations around X, Y and Z (radians) in that order
func rotate(v, angles core.Vec3) core.Vec3 {
	sin, cos := math.Sincos(angles.X)
	v = core.NewVec3(v.X, v.Y*cos-v.Z*sin, v.Y*sin+v.Z*cos)

	sin, cos = math.Sincos(angles.Y)
	v = core.NewVec3(v.X*cos+v.Z*sin, v.Y, -v.X*sin+v.Z*cos)

	sin, cos = math.Sincos(angles.Z)
	return core.NewVec3(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos, v.Z)
}

// generateFaces builds the 6 faces with edge vectors ordered so every quad
// normal points out of the box
func (b *Box) generateFaces() {
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = rotate(corners[i].MultiplyVec(b.Size), b.Rotation).Add(b.Center.Vec())
	}

	face := func(corner, u, v int) *Quad {
		return NewQuad(
			core.Point3(corners[corner]),
			corners[u].Subtract(corners[corner]),
			corners[v].Subtract(corners[corner]),
		)
	}

	b.faces = [6]*Quad{
		face(4, 5, 7), // front (Z+)
		face(1, 0, 2), // back (Z-)
		face(5, 1, 6), // right (X+)
		face(0, 4, 3), // left (X-)
		face(3, 7, 2), // top (Y+)
		face(4, 0, 5), // bottom (Y-)
	}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestT := tMax

	for _, face := range b.faces {
		if hit, isHit := face.Hit(ray, tMin, closestT); isHit && hit.T < closestT {
			closestT = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
