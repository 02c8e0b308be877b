package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from quads, with a mirror
// sphere and a glass sphere lit by a point light under the ceiling
func NewCornellScene() *Scene {
	camera := Camera{
		Eye:    core.NewPoint3(278, 278, -800),
		Center: core.NewPoint3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   40.0,
	}

	s := New(camera, 400, 400)
	s.MaxDepth = 6
	s.Ambient = core.NewVec3(0.4, 0.4, 0.4)

	white := material.NewMatte(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewMatte(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewMatte(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 0.85)
	glass := material.NewGlass(1.5)

	// Standard 555 unit box
	boxSize := 555.0

	s.Add("floor", geometry.NewQuad(
		core.NewPoint3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
	), white)
	s.Add("ceiling", geometry.NewQuad(
		core.NewPoint3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
	), white)
	s.Add("back-wall", geometry.NewQuad(
		core.NewPoint3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
	), white)
	s.Add("left-wall", geometry.NewQuad(
		core.NewPoint3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
	), red)
	s.Add("right-wall", geometry.NewQuad(
		core.NewPoint3(0, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
	), green)

	s.Add("mirror-sphere", geometry.NewSphere(core.NewPoint3(185, 90, 350), 90), mirror)
	s.Add("glass-sphere", geometry.NewSphere(core.NewPoint3(370, 90, 200), 90), glass)

	s.AddLight(lights.NewPointLight(core.NewPoint3(278, 540, 278), core.NewVec3(0.9, 0.9, 0.85)))

	return s
}
