package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResult describes what the primary ray through one pixel sees
type InspectResult struct {
	Row       int
	Column    int
	Ray       core.Ray
	Hit       bool
	ObjectID  scene.ObjectID
	Object    *scene.Object // nil on a miss
	HitRecord *geometry.HitRecord
	Color     core.Vec3 // Shaded color; black on a miss
	Pixel     [3]uint8  // Color as written to the pixel buffer
}

// InspectPixel traces the primary ray through pixel (row, column) exactly as
// Render does and reports the hit
func InspectPixel(s *scene.Scene, row, column int) (InspectResult, error) {
	if err := s.Validate(); err != nil {
		return InspectResult{}, fmt.Errorf("cannot inspect scene: %w", err)
	}
	if row < 0 || row >= s.Height || column < 0 || column >= s.Width {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", row, column, s.Width, s.Height)
	}

	generator, err := NewRayGenerator(s.Camera, s.Width, s.Height)
	if err != nil {
		return InspectResult{}, fmt.Errorf("cannot inspect scene: %w", err)
	}

	ray := generator.Ray(row, column)
	result := InspectResult{Row: row, Column: column, Ray: ray}

	id, hit, ok := s.Hit(ray)
	if !ok {
		return result, nil
	}

	result.Hit = true
	result.ObjectID = id
	result.Object = s.Object(id)
	result.HitRecord = hit
	result.Color = NewShader(s, s.MaxDepth).Shade(ray, id, 0)
	result.Pixel = [3]uint8{toByte(result.Color.X), toByte(result.Color.Y), toByte(result.Color.Z)}

	return result, nil
}
