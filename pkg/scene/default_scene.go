package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres over a ground plane
func NewDefaultScene() *Scene {
	camera := Camera{
		Eye:    core.NewPoint3(0, 0.75, 2),
		Center: core.NewPoint3(0, 0.5, -1),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   40.0,
	}

	s := New(camera, 400, 400)
	s.MaxDepth = 5
	s.Ambient = core.NewVec3(0.6, 0.6, 0.6)
	s.Background = core.NewVec3(0.5, 0.7, 1.0) // Sky seen in reflections

	ground := material.NewMatte(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	red := material.NewPlastic(core.NewVec3(0.65, 0.25, 0.2), 60)
	silver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8), 0.8)
	gold := material.NewMirror(core.NewVec3(0.8, 0.6, 0.2), 0.4)
	glass := material.NewGlass(1.5)
	blue := material.NewPlastic(core.NewVec3(0.1, 0.2, 0.5), 30)

	s.Add("ground", geometry.NewPlane(core.NewPoint3(0, 0, 0), core.NewVec3(0, 1, 0)), ground)
	s.Add("center", geometry.NewSphere(core.NewPoint3(0, 0.5, -1), 0.5), red)
	s.Add("left", geometry.NewSphere(core.NewPoint3(-1, 0.5, -1), 0.5), silver)
	s.Add("right", geometry.NewSphere(core.NewPoint3(1, 0.5, -1), 0.5), gold)
	s.Add("glass", geometry.NewSphere(core.NewPoint3(0.5, 0.25, -0.5), 0.25), glass)
	s.Add("small-blue", geometry.NewSphere(core.NewPoint3(-0.5, 0.2, -0.5), 0.2), blue)

	s.AddLight(lights.NewPointLight(core.NewPoint3(30, 30.5, 15), core.NewVec3(0.9, 0.85, 0.8)))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewVec3(0.2, 0.2, 0.25)))

	return s
}

// NewEmptyScene creates a scene with a camera and no objects
func NewEmptyScene() *Scene {
	camera := Camera{
		Eye:    core.NewPoint3(0, 0, 0),
		Center: core.NewPoint3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   45.0,
	}
	return New(camera, 64, 64)
}

// NewMirrorsScene creates two parallel mirrors facing each other with a
// sphere between them. Reflections bounce until the depth limit.
func NewMirrorsScene() *Scene {
	camera := Camera{
		Eye:    core.NewPoint3(0, 1, 4),
		Center: core.NewPoint3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   50.0,
	}

	s := New(camera, 300, 300)
	s.MaxDepth = 12
	s.Ambient = core.NewVec3(0.5, 0.5, 0.5)

	mirror := &material.Material{
		Color:        core.NewVec3(0.9, 0.95, 0.9),
		Ambient:      0.02,
		Diffuse:      0.05,
		Reflectivity: 0.95,
	}
	floor := material.NewMatte(core.NewVec3(0.4, 0.4, 0.45))
	ball := material.NewPlastic(core.NewVec3(0.9, 0.3, 0.1), 80)

	s.Add("floor", geometry.NewPlane(core.NewPoint3(0, 0, 0), core.NewVec3(0, 1, 0)), floor)
	s.Add("mirror-left", geometry.NewQuad(core.NewPoint3(-1.5, 0, -3), core.NewVec3(0, 0, 6), core.NewVec3(0, 3, 0)), mirror)
	s.Add("mirror-right", geometry.NewQuad(core.NewPoint3(1.5, 0, -3), core.NewVec3(0, 3, 0), core.NewVec3(0, 0, 6)), mirror)
	s.Add("ball", geometry.NewSphere(core.NewPoint3(0, 0.5, 0), 0.5), ball)

	s.AddLight(lights.NewPointLight(core.NewPoint3(0, 2.8, 1), core.NewVec3(1, 1, 1)))

	return s
}
