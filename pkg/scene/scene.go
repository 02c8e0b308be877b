package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitEpsilon is the minimum ray parameter accepted as a hit. It keeps
// secondary rays from re-hitting the surface they start on.
const HitEpsilon = 1e-4

// DefaultMaxDepth is the recursion depth used when a scene does not set one
const DefaultMaxDepth = 5

// ErrInvalidScene is returned by Validate
var ErrInvalidScene = errors.New("invalid scene")

// Camera describes the viewpoint. FovY is the vertical field of view in degrees.
type Camera struct {
	Eye    core.Point3
	Center core.Point3
	Up     core.Vec3
	FovY   float64
}

// ObjectID identifies an object in a scene by its index in Scene.Objects
type ObjectID int

// Object is a shape paired with its material
type Object struct {
	Name     string
	Shape    geometry.Shape
	Material *material.Material
}

// Scene contains all the elements needed for rendering. It is read-only once
// rendering starts.
type Scene struct {
	Camera     Camera
	Width      int // Image width in pixels
	Height     int // Image height in pixels
	MaxDepth   int // Maximum recursion depth for secondary rays
	Ambient    core.Vec3
	Background core.Vec3 // Color returned by secondary rays that escape the scene
	Objects    []Object
	Lights     []lights.Light
}

// New creates an empty scene
func New(camera Camera, width, height int) *Scene {
	return &Scene{
		Camera:   camera,
		Width:    width,
		Height:   height,
		MaxDepth: DefaultMaxDepth,
		Ambient:  core.NewVec3(1, 1, 1),
		Objects:  make([]Object, 0),
		Lights:   make([]lights.Light, 0),
	}
}

// Add appends an object and returns its id
func (s *Scene) Add(name string, shape geometry.Shape, mat *material.Material) ObjectID {
	s.Objects = append(s.Objects, Object{Name: name, Shape: shape, Material: mat})
	return ObjectID(len(s.Objects) - 1)
}

// AddLight appends a light source
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Object returns the object with the given id
func (s *Scene) Object(id ObjectID) *Object {
	return &s.Objects[id]
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image dimensions must be positive, got %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidScene, s.MaxDepth)
	}
	for i, obj := range s.Objects {
		if obj.Shape == nil || obj.Material == nil {
			return fmt.Errorf("%w: object %d (%q) needs a shape and a material", ErrInvalidScene, i, obj.Name)
		}
		if err := obj.Material.Validate(); err != nil {
			return fmt.Errorf("%w: object %d (%q): %w", ErrInvalidScene, i, obj.Name, err)
		}
	}
	return nil
}

// Intersect returns the nearest object hit by the ray, if any
func (s *Scene) Intersect(ray core.Ray) (ObjectID, bool) {
	id, _, ok := s.Hit(ray)
	return id, ok
}

// Hit returns the nearest object hit by the ray together with the hit record.
// Objects are scanned in order and only a strictly closer hit replaces the
// current one, so equal distances resolve to the lowest id.
func (s *Scene) Hit(ray core.Ray) (ObjectID, *geometry.HitRecord, bool) {
	var closestHit *geometry.HitRecord
	closestID := ObjectID(-1)
	closestSoFar := math.Inf(1)

	for i := range s.Objects {
		if hit, isHit := s.Objects[i].Shape.Hit(ray, HitEpsilon, closestSoFar); isHit && hit.T < closestSoFar {
			closestSoFar = hit.T
			closestHit = hit
			closestID = ObjectID(i)
		}
	}

	return closestID, closestHit, closestHit != nil
}

// HitObject recomputes the hit record of a ray against a known object
func (s *Scene) HitObject(id ObjectID, ray core.Ray) (*geometry.HitRecord, bool) {
	return s.Objects[id].Shape.Hit(ray, HitEpsilon, math.Inf(1))
}

// Occluded reports whether anything lies along the ray closer than maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for i := range s.Objects {
		if _, isHit := s.Objects[i].Shape.Hit(ray, HitEpsilon, maxDistance); isHit {
			return true
		}
	}
	return false
}
