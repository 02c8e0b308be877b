package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for out-of-range coefficients
var ErrInvalidMaterial = errors.New("invalid material")

// Material describes how a surface responds to light: Phong coefficients for
// local illumination plus the weights of the mirror and transmitted rays.
type Material struct {
	Color           core.Vec3 // Surface albedo
	Ambient         float64   // Ambient coefficient (ka)
	Diffuse         float64   // Diffuse coefficient (kd)
	Specular        float64   // Specular highlight coefficient (ks)
	Shininess       float64   // Phong exponent
	Reflectivity    float64   // Weight of the reflected ray (kr)
	Transparency    float64   // Weight of the refracted ray (kt)
	RefractiveIndex float64   // Index of refraction for transmitted rays
	Fresnel         bool      // Split kr+kt between reflection and refraction by Schlick's approximation
}

// NewMatte creates a purely diffuse material
func NewMatte(color core.Vec3) *Material {
	return &Material{
		Color:   color,
		Ambient: 0.1,
		Diffuse: 0.9,
	}
}

// NewPlastic creates a diffuse material with a white specular highlight
func NewPlastic(color core.Vec3, shininess float64) *Material {
	return &Material{
		Color:     color,
		Ambient:   0.1,
		Diffuse:   0.7,
		Specular:  0.3,
		Shininess: shininess,
	}
}

// NewMirror creates a reflective material tinted by color
func NewMirror(color core.Vec3, reflectivity float64) *Material {
	return &Material{
		Color:        color,
		Ambient:      0.05,
		Diffuse:      0.2,
		Specular:     0.5,
		Shininess:    200,
		Reflectivity: reflectivity,
	}
}

// NewGlass creates a clear transparent material with Fresnel-weighted reflection
func NewGlass(refractiveIndex float64) *Material {
	return &Material{
		Color:           core.NewVec3(1, 1, 1),
		Specular:        0.5,
		Shininess:       300,
		Reflectivity:    0.1,
		Transparency:    0.9,
		RefractiveIndex: refractiveIndex,
		Fresnel:         true,
	}
}

// IsRecursive reports whether shading spawns secondary rays
func (m *Material) IsRecursive() bool {
	return m.Reflectivity > 0 || m.Transparency > 0
}

// Validate checks coefficient ranges
func (m *Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
		{"reflectivity", m.Reflectivity},
		{"transparency", m.Transparency},
	}
	for _, c := range coefficients {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrInvalidMaterial, c.name, c.value)
		}
	}
	if m.Reflectivity+m.Transparency > 1 {
		return fmt.Errorf("%w: reflectivity + transparency must not exceed 1, got %g",
			ErrInvalidMaterial, m.Reflectivity+m.Transparency)
	}
	if m.Transparency > 0 && m.RefractiveIndex <= 0 {
		return fmt.Errorf("%w: transparent material needs a positive refractive index, got %g",
			ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}
