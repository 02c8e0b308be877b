package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidSceneFile is returned for scene files that parse but cannot be built
var ErrInvalidSceneFile = errors.New("invalid scene file")

const (
	defaultImageSize = 400
	defaultFovY      = 45.0
)

// vec3 is a YAML triple such as [0, 1, 0]
type vec3 [3]float64

func (v vec3) vec() core.Vec3     { return core.NewVec3(v[0], v[1], v[2]) }
func (v vec3) point() core.Point3 { return core.NewPoint3(v[0], v[1], v[2]) }
func (v *vec3) orDefault(d vec3) vec3 {
	if v == nil {
		return d
	}
	return *v
}

// SceneFile is the YAML representation of a scene
type SceneFile struct {
	Camera     CameraSpec              `yaml:"camera"`
	Image      ImageSpec               `yaml:"image"`
	MaxDepth   *int                    `yaml:"max_depth"`
	Ambient    *vec3                   `yaml:"ambient"`
	Background *vec3                   `yaml:"background"`
	Materials  map[string]MaterialSpec `yaml:"materials"`
	Objects    []ObjectSpec            `yaml:"objects"`
	Lights     []LightSpec             `yaml:"lights"`
}

// CameraSpec describes the viewpoint
type CameraSpec struct {
	Eye    vec3    `yaml:"eye"`
	Center vec3    `yaml:"center"`
	Up     *vec3   `yaml:"up"`
	FovY   float64 `yaml:"fovy"`
}

// ImageSpec sets the output dimensions
type ImageSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MaterialSpec starts from a preset and overrides any coefficient that is set
type MaterialSpec struct {
	Preset          string   `yaml:"preset"` // matte (default), plastic, mirror, glass
	Color           *vec3    `yaml:"color"`
	Ambient         *float64 `yaml:"ambient"`
	Diffuse         *float64 `yaml:"diffuse"`
	Specular        *float64 `yaml:"specular"`
	Shininess       *float64 `yaml:"shininess"`
	Reflectivity    *float64 `yaml:"reflectivity"`
	Transparency    *float64 `yaml:"transparency"`
	RefractiveIndex *float64 `yaml:"refractive_index"`
	Fresnel         *bool    `yaml:"fresnel"`
}

// ObjectSpec describes one shape. Which fields apply depends on Type.
type ObjectSpec struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"` // sphere, plane, quad, triangle, disc, box, cylinder, cone
	Material   string  `yaml:"material"`
	Center     vec3    `yaml:"center"`      // sphere, disc, box
	Radius     float64 `yaml:"radius"`      // sphere, disc, cylinder
	Point      vec3    `yaml:"point"`       // plane
	Normal     vec3    `yaml:"normal"`      // plane, disc
	Corner     vec3    `yaml:"corner"`      // quad
	U          vec3    `yaml:"u"`           // quad
	V          vec3    `yaml:"v"`           // quad
	Vertices   []vec3  `yaml:"vertices"`    // triangle
	Size       vec3    `yaml:"size"`        // box, half-extents
	Rotation   vec3    `yaml:"rotation"`    // box, degrees around X, Y, Z
	Base       vec3    `yaml:"base"`        // cylinder, cone
	Top        vec3    `yaml:"top"`         // cylinder, cone
	BaseRadius float64 `yaml:"base_radius"` // cone
	TopRadius  float64 `yaml:"top_radius"`  // cone
	Capped     bool    `yaml:"capped"`      // cylinder, cone
}

// LightSpec describes one light. Which fields apply depends on Type.
type LightSpec struct {
	Type      string  `yaml:"type"` // point, directional, spot
	Color     *vec3   `yaml:"color"`
	Position  vec3    `yaml:"position"`   // point, spot
	Direction vec3    `yaml:"direction"`  // directional
	Target    vec3    `yaml:"target"`     // spot
	Cone      float64 `yaml:"cone_angle"` // spot, degrees
	Falloff   float64 `yaml:"falloff"`    // spot, degrees
}

// LoadScene reads and builds a YAML scene file
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

// ParseScene builds a scene from YAML
func ParseScene(data []byte) (*scene.Scene, error) {
	var file SceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}
	return file.Build()
}

// Build converts the parsed file into a validated scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	camera := scene.Camera{
		Eye:    f.Camera.Eye.point(),
		Center: f.Camera.Center.point(),
		Up:     f.Camera.Up.orDefault(vec3{0, 1, 0}).vec(),
		FovY:   f.Camera.FovY,
	}
	if camera.FovY == 0 {
		camera.FovY = defaultFovY
	}

	width, height := f.Image.Width, f.Image.Height
	if width == 0 {
		width = defaultImageSize
	}
	if height == 0 {
		height = defaultImageSize
	}

	s := scene.New(camera, width, height)
	if f.MaxDepth != nil {
		s.MaxDepth = *f.MaxDepth
	}
	s.Ambient = f.Ambient.orDefault(vec3{1, 1, 1}).vec()
	s.Background = f.Background.orDefault(vec3{0, 0, 0}).vec()

	materials := make(map[string]*material.Material, len(f.Materials))
	for name, spec := range f.Materials {
		mat, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %w", ErrInvalidSceneFile, name, err)
		}
		materials[name] = mat
	}

	for i, obj := range f.Objects {
		name := obj.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", obj.Type, i)
		}

		mat, ok := materials[obj.Material]
		if !ok {
			return nil, fmt.Errorf("%w: object %q references unknown material %q", ErrInvalidSceneFile, name, obj.Material)
		}

		shape, err := obj.build()
		if err != nil {
			return nil, fmt.Errorf("%w: object %q: %w", ErrInvalidSceneFile, name, err)
		}
		s.Add(name, shape, mat)
	}

	for i, spec := range f.Lights {
		light, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: light %d: %w", ErrInvalidSceneFile, i, err)
		}
		s.AddLight(light)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (m MaterialSpec) build() (*material.Material, error) {
	white := core.NewVec3(1, 1, 1)

	var mat *material.Material
	switch m.Preset {
	case "", "matte":
		mat = material.NewMatte(white)
	case "plastic":
		mat = material.NewPlastic(white, 50)
	case "mirror":
		mat = material.NewMirror(white, 0.8)
	case "glass":
		mat = material.NewGlass(1.5)
	default:
		return nil, fmt.Errorf("unknown preset %q", m.Preset)
	}

	if m.Color != nil {
		mat.Color = m.Color.vec()
	}
	overrides := []struct {
		value  *float64
		target *float64
	}{
		{m.Ambient, &mat.Ambient},
		{m.Diffuse, &mat.Diffuse},
		{m.Specular, &mat.Specular},
		{m.Shininess, &mat.Shininess},
		{m.Reflectivity, &mat.Reflectivity},
		{m.Transparency, &mat.Transparency},
		{m.RefractiveIndex, &mat.RefractiveIndex},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.target = *o.value
		}
	}
	if m.Fresnel != nil {
		mat.Fresnel = *m.Fresnel
	}

	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

func (o ObjectSpec) build() (geometry.Shape, error) {
	switch o.Type {
	case "sphere":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", o.Radius)
		}
		return geometry.NewSphere(o.Center.point(), o.Radius), nil
	case "plane":
		if o.Normal == (vec3{}) {
			return nil, errors.New("plane needs a non-zero normal")
		}
		return geometry.NewPlane(o.Point.point(), o.Normal.vec()), nil
	case "quad":
		if o.U.vec().Cross(o.V.vec()).LengthSquared() == 0 {
			return nil, errors.New("quad edges must not be parallel or zero")
		}
		return geometry.NewQuad(o.Corner.point(), o.U.vec(), o.V.vec()), nil
	case "triangle":
		if len(o.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(o.Vertices))
		}
		return geometry.NewTriangle(o.Vertices[0].point(), o.Vertices[1].point(), o.Vertices[2].point()), nil
	case "disc":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("disc radius must be positive, got %g", o.Radius)
		}
		if o.Normal == (vec3{}) {
			return nil, errors.New("disc needs a non-zero normal")
		}
		return geometry.NewDisc(o.Center.point(), o.Normal.vec(), o.Radius), nil
	case "box":
		if o.Size[0] <= 0 || o.Size[1] <= 0 || o.Size[2] <= 0 {
			return nil, fmt.Errorf("box size must be positive on every axis, got %v", o.Size)
		}
		rotation := o.Rotation.vec().Multiply(math.Pi / 180)
		return geometry.NewBox(o.Center.point(), o.Size.vec(), rotation), nil
	case "cylinder":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("cylinder radius must be positive, got %g", o.Radius)
		}
		if o.Base == o.Top {
			return nil, errors.New("cylinder base and top must differ")
		}
		return geometry.NewCylinder(o.Base.point(), o.Top.point(), o.Radius, o.Capped), nil
	case "cone":
		cone, err := geometry.NewCone(o.Base.point(), o.BaseRadius, o.Top.point(), o.TopRadius, o.Capped)
		if err != nil {
			return nil, err
		}
		return cone, nil
	}
	return nil, fmt.Errorf("unknown object type %q", o.Type)
}

func (l LightSpec) build() (lights.Light, error) {
	color := l.Color.orDefault(vec3{1, 1, 1}).vec()

	switch lights.LightType(l.Type) {
	case lights.LightTypePoint:
		return lights.NewPointLight(l.Position.point(), color), nil
	case lights.LightTypeDirectional:
		if l.Direction == (vec3{}) {
			return nil, errors.New("directional light needs a non-zero direction")
		}
		return lights.NewDirectionalLight(l.Direction.vec(), color), nil
	case lights.LightTypeSpot:
		if l.Cone <= 0 {
			return nil, fmt.Errorf("spot light cone angle must be positive, got %g", l.Cone)
		}
		if l.Falloff < 0 || l.Falloff > l.Cone {
			return nil, fmt.Errorf("spot light falloff must be within [0, cone_angle], got %g for cone angle %g", l.Falloff, l.Cone)
		}
		return lights.NewSpotLight(l.Position.point(), l.Target.point(), color, l.Cone, l.Falloff), nil
	}
	return nil, fmt.Errorf("unknown light type %q", l.Type)
}
