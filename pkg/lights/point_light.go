package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits uniformly in all directions from a single position.
// Intensity is not attenuated with distance.
type PointLight struct {
	Position core.Point3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point3, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

func (pl *PointLight) Type() LightType { return LightTypePoint }

// Illuminate implements the Light interface
func (pl *PointLight) Illuminate(point core.Point3) Illumination {
	toLight := pl.Position.Sub(point)
	distance := toLight.Length()
	if distance == 0 {
		return Illumination{Direction: core.NewVec3(0, 1, 0), Distance: 0}
	}
	return Illumination{
		Direction: toLight.Divide(distance),
		Distance:  distance,
		Color:     pl.Color,
	}
}

// DirectionalLight is an infinitely distant light arriving from one direction
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels in
	Color     core.Vec3
}

// NewDirectionalLight creates a light traveling along direction
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color}
}

func (dl *DirectionalLight) Type() LightType { return LightTypeDirectional }

// Illuminate implements the Light interface
func (dl *DirectionalLight) Illuminate(point core.Point3) Illumination {
	return Illumination{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Color:     dl.Color,
	}
}
