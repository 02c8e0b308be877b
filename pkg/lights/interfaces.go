package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

// Light interface for sources that contribute direct illumination
type Light interface {
	Type() LightType

	// Illuminate returns the light arriving at point
	Illuminate(point core.Point3) Illumination
}

// Illumination describes the light reaching a shading point
type Illumination struct {
	Direction core.Vec3 // Unit direction FROM the shading point TO the light
	Distance  float64   // Distance to the light; +Inf for directional lights
	Color     core.Vec3 // Light color/intensity arriving at the point
}
