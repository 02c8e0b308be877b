package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a grid of rainbow-colored
// reflective spheres on a gray ground plane
func NewSphereGridScene() *Scene {
	camera := Camera{
		Eye:    core.NewPoint3(4.5, 6, 18),
		Center: core.NewPoint3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   40.0,
	}

	s := New(camera, 400, 400)
	s.MaxDepth = 4
	s.Ambient = core.NewVec3(0.5, 0.5, 0.5)
	s.Background = core.NewVec3(0.5, 0.7, 1.0)

	s.Add("ground", geometry.NewPlane(core.NewPoint3(0, 0, 0), core.NewVec3(0, 1, 0)),
		material.NewMatte(core.NewVec3(0.5, 0.5, 0.5)))

	gridSize := 10
	spacing := 9.0 / float64(gridSize-1)
	radius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i*gridSize+j) / float64(gridSize*gridSize) * 360.0
			color := oklchToRGB(0.7, 0.15, hue)
			sphereMaterial := material.NewMirror(color, 0.3)
			center := core.NewPoint3(float64(i)*spacing, radius, float64(j)*spacing)
			s.Add(fmt.Sprintf("sphere-%d-%d", i, j), geometry.NewSphere(center, radius), sphereMaterial)
		}
	}

	s.AddLight(lights.NewPointLight(core.NewPoint3(20, 25, 20), core.NewVec3(0.8, 0.78, 0.72)))
	s.AddLight(lights.NewSpotLight(
		core.NewPoint3(4.5, 12, 4.5),
		core.NewPoint3(4.5, 0, 4.5),
		core.NewVec3(0.4, 0.4, 0.45),
		35.0,
		8.0,
	))

	return s
}
