package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone with a soft edge
type SpotLight struct {
	position        core.Point3
	direction       core.Vec3 // Normalized direction vector (from -> to)
	color           core.Vec3
	cosTotalWidth   float64 // Cosine of total cone angle (outer edge)
	cosFalloffStart float64 // Cosine of falloff start angle (inner cone)
}

// NewSpotLight creates a spot light at from aimed at to.
// coneAngleDegrees is the total cone angle, coneDeltaAngleDegrees the width
// of the falloff band at its edge.
func NewSpotLight(from, to core.Point3, color core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *SpotLight {
	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &SpotLight{
		position:        from,
		direction:       to.Sub(from).Normalize(),
		color:           color,
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

func (sl *SpotLight) Type() LightType { return LightTypeSpot }

// Illuminate implements the Light interface
func (sl *SpotLight) Illuminate(point core.Point3) Illumination {
	toLightVec := sl.position.Sub(point)
	distance := toLightVec.Length()
	if distance == 0 {
		return Illumination{Direction: core.NewVec3(0, 1, 0), Distance: 0}
	}

	toLight := toLightVec.Divide(distance)
	cosAngle := sl.direction.Dot(toLight.Negate())

	return Illumination{
		Direction: toLight,
		Distance:  distance,
		Color:     sl.color.Multiply(sl.falloff(cosAngle)),
	}
}

// falloff is 1 inside the inner cone, 0 outside the outer cone, and a quartic
// ramp in between
func (sl *SpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < sl.cosTotalWidth {
		return 0.0
	}
	if cosAngle >= sl.cosFalloffStart {
		return 1.0
	}
	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}
