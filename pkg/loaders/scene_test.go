package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const testSceneYAML = `# Scene: Test Room
# Description: One of everything

camera:
  eye: [0, 1, 4]
  center: [0, 1, 0]
  fovy: 50
image:
  width: 64
  height: 48
max_depth: 3
ambient: [0.5, 0.5, 0.5]
background: [0.1, 0.2, 0.3]

materials:
  red:
    color: [0.8, 0.1, 0.1]
  chrome:
    preset: mirror
    reflectivity: 0.9
  glass:
    preset: glass
    refractive_index: 1.33
  shiny:
    preset: plastic
    shininess: 120
    fresnel: true

objects:
  - name: floor
    type: plane
    material: red
    point: [0, 0, 0]
    normal: [0, 2, 0]
  - name: ball
    type: sphere
    material: chrome
    center: [0, 1, 0]
    radius: 0.5
  - type: quad
    material: glass
    corner: [-1, 0, -1]
    u: [2, 0, 0]
    v: [0, 2, 0]
  - name: wedge
    type: triangle
    material: shiny
    vertices: [[0, 0, -2], [1, 0, -2], [0, 1, -2]]

lights:
  - type: point
    position: [0, 3, 2]
  - type: directional
    direction: [0, -1, -1]
    color: [0.2, 0.2, 0.2]
  - type: spot
    position: [0, 3, 0]
    target: [0, 0, 0]
    cone_angle: 30
    falloff: 5
`

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	if s.Width != 64 || s.Height != 48 {
		t.Errorf("Expected 64x48, got %dx%d", s.Width, s.Height)
	}
	if s.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d", s.MaxDepth)
	}
	if s.Camera.Eye != core.NewPoint3(0, 1, 4) || s.Camera.FovY != 50 {
		t.Errorf("Unexpected camera %+v", s.Camera)
	}
	if s.Camera.Up != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected default up vector, got %v", s.Camera.Up)
	}
	if s.Ambient != core.NewVec3(0.5, 0.5, 0.5) || s.Background != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Unexpected ambient %v / background %v", s.Ambient, s.Background)
	}

	if len(s.Objects) != 4 {
		t.Fatalf("Expected 4 objects, got %d", len(s.Objects))
	}
	expectedNames := []string{"floor", "ball", "quad-2", "wedge"}
	for i, name := range expectedNames {
		if s.Objects[i].Name != name {
			t.Errorf("Object %d name = %q, want %q", i, s.Objects[i].Name, name)
		}
	}

	if _, ok := s.Objects[0].Shape.(*geometry.Plane); !ok {
		t.Errorf("Expected plane, got %T", s.Objects[0].Shape)
	}
	if plane := s.Objects[0].Shape.(*geometry.Plane); plane.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normalized plane normal, got %v", plane.Normal)
	}
	if sphere, ok := s.Objects[1].Shape.(*geometry.Sphere); !ok || sphere.Radius != 0.5 {
		t.Errorf("Expected sphere of radius 0.5, got %#v", s.Objects[1].Shape)
	}
	if _, ok := s.Objects[2].Shape.(*geometry.Quad); !ok {
		t.Errorf("Expected quad, got %T", s.Objects[2].Shape)
	}
	if _, ok := s.Objects[3].Shape.(*geometry.Triangle); !ok {
		t.Errorf("Expected triangle, got %T", s.Objects[3].Shape)
	}

	red := s.Objects[0].Material
	if red.Color != core.NewVec3(0.8, 0.1, 0.1) || red.Diffuse != 0.9 {
		t.Errorf("Expected matte red material, got %+v", red)
	}
	if chrome := s.Objects[1].Material; chrome.Reflectivity != 0.9 {
		t.Errorf("Expected reflectivity override 0.9, got %f", chrome.Reflectivity)
	}
	if glass := s.Objects[2].Material; glass.RefractiveIndex != 1.33 || !glass.Fresnel {
		t.Errorf("Expected glass preset with IOR 1.33, got %+v", glass)
	}
	if shiny := s.Objects[3].Material; shiny.Shininess != 120 || !shiny.Fresnel {
		t.Errorf("Expected plastic overrides, got %+v", shiny)
	}

	expectedLights := []lights.LightType{lights.LightTypePoint, lights.LightTypeDirectional, lights.LightTypeSpot}
	if len(s.Lights) != len(expectedLights) {
		t.Fatalf("Expected %d lights, got %d", len(expectedLights), len(s.Lights))
	}
	for i, lt := range expectedLights {
		if s.Lights[i].Type() != lt {
			t.Errorf("Light %d type = %s, want %s", i, s.Lights[i].Type(), lt)
		}
	}
}

func TestParseScene_Defaults(t *testing.T) {
	s, err := ParseScene([]byte("camera:\n  eye: [0, 0, 1]\n  center: [0, 0, 0]\n"))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}
	if s.Width != 400 || s.Height != 400 {
		t.Errorf("Expected default 400x400, got %dx%d", s.Width, s.Height)
	}
	if s.Camera.FovY != 45 {
		t.Errorf("Expected default fovy 45, got %f", s.Camera.FovY)
	}
	if s.MaxDepth != scene.DefaultMaxDepth {
		t.Errorf("Expected default max depth, got %d", s.MaxDepth)
	}
	if s.Background != (core.Vec3{}) || s.Ambient != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected defaults: ambient %v background %v", s.Ambient, s.Background)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{"bad yaml", "objects: [", "failed to parse"},
		{"short vector", "camera:\n  eye: [0, 1]\n", "failed to parse"},
		{"unknown material", "objects:\n  - type: sphere\n    material: nope\n    radius: 1\n", "unknown material"},
		{"unknown object type", "materials:\n  m: {}\nobjects:\n  - type: torus\n    material: m\n", "unknown object type"},
		{"zero radius", "materials:\n  m: {}\nobjects:\n  - type: sphere\n    material: m\n", "radius"},
		{"triangle vertices", "materials:\n  m: {}\nobjects:\n  - type: triangle\n    material: m\n    vertices: [[0,0,0]]\n", "3 vertices"},
		{"degenerate quad", "materials:\n  m: {}\nobjects:\n  - type: quad\n    material: m\n    u: [1,0,0]\n    v: [2,0,0]\n", "parallel"},
		{"unknown preset", "materials:\n  m:\n    preset: velvet\n", "unknown preset"},
		{"invalid material", "materials:\n  m:\n    reflectivity: 0.8\n    transparency: 0.8\n    refractive_index: 1.5\n", "invalid material"},
		{"unknown light", "lights:\n  - type: area\n", "unknown light type"},
		{"zero direction", "lights:\n  - type: directional\n", "non-zero direction"},
		{"spot cone", "lights:\n  - type: spot\n", "cone angle"},
		{"spot falloff wider than cone", "lights:\n  - type: spot\n    cone_angle: 20\n    falloff: 25\n", "falloff"},
		{"spot negative falloff", "lights:\n  - type: spot\n    cone_angle: 20\n    falloff: -1\n", "falloff"},
		{"disc radius", "materials:\n  m: {}\nobjects:\n  - type: disc\n    material: m\n    normal: [0,1,0]\n", "radius"},
		{"disc normal", "materials:\n  m: {}\nobjects:\n  - type: disc\n    material: m\n    radius: 1\n", "non-zero normal"},
		{"box size", "materials:\n  m: {}\nobjects:\n  - type: box\n    material: m\n    size: [1, 0, 1]\n", "box size"},
		{"cylinder radius", "materials:\n  m: {}\nobjects:\n  - type: cylinder\n    material: m\n    top: [0,1,0]\n", "radius"},
		{"cylinder height", "materials:\n  m: {}\nobjects:\n  - type: cylinder\n    material: m\n    radius: 1\n", "base and top"},
		{"cone radii", "materials:\n  m: {}\nobjects:\n  - type: cone\n    material: m\n    top: [0,1,0]\n    base_radius: 1\n    top_radius: 1\n", "base radius must be greater"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestParseScene_ExtraShapes(t *testing.T) {
	yamlData := `
materials:
  m: {}
objects:
  - type: disc
    material: m
    center: [0, 0, 0]
    normal: [0, 1, 0]
    radius: 2
  - type: box
    material: m
    center: [0, 1, 0]
    size: [1, 1, 1]
    rotation: [0, 90, 0]
  - type: cylinder
    material: m
    base: [0, 0, 0]
    top: [0, 2, 0]
    radius: 0.5
    capped: true
  - type: cone
    material: m
    base: [0, 0, 0]
    top: [0, 1, 0]
    base_radius: 1
    top_radius: 0.25
`
	s, err := ParseScene([]byte(yamlData))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}
	if len(s.Objects) != 4 {
		t.Fatalf("Expected 4 objects, got %d", len(s.Objects))
	}

	if disc, ok := s.Objects[0].Shape.(*geometry.Disc); !ok || disc.Radius != 2 {
		t.Errorf("Expected disc of radius 2, got %#v", s.Objects[0].Shape)
	}
	box, ok := s.Objects[1].Shape.(*geometry.Box)
	if !ok {
		t.Fatalf("Expected box, got %T", s.Objects[1].Shape)
	}
	if math.Abs(box.Rotation.Y-math.Pi/2) > 1e-12 {
		t.Errorf("Expected rotation converted to radians, got %v", box.Rotation)
	}
	if cyl, ok := s.Objects[2].Shape.(*geometry.Cylinder); !ok || !cyl.Capped || cyl.Radius != 0.5 {
		t.Errorf("Expected capped cylinder of radius 0.5, got %#v", s.Objects[2].Shape)
	}
	if cone, ok := s.Objects[3].Shape.(*geometry.Cone); !ok || cone.TopRadius != 0.25 || cone.Capped {
		t.Errorf("Expected open frustum, got %#v", s.Objects[3].Shape)
	}
	if s.Objects[1].Name != "box-1" {
		t.Errorf("Expected generated name box-1, got %q", s.Objects[1].Name)
	}
}

func TestParseScene_InvalidDimensions(t *testing.T) {
	_, err := ParseScene([]byte("camera:\n  eye: [0, 0, 1]\nimage:\n  width: -5\n"))
	if !errors.Is(err, scene.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if len(s.Objects) != 4 {
		t.Errorf("Expected 4 objects, got %d", len(s.Objects))
	}

	// Metadata in the header comments is picked up by scene discovery
	info, err := scene.ParseSceneMetadata(path)
	if err != nil {
		t.Fatalf("ParseSceneMetadata() error: %v", err)
	}
	if info.Name != "Test Room" {
		t.Errorf("Expected scene name %q, got %q", "Test Room", info.Name)
	}

	if _, err := LoadScene(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadScene_SampleFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected sample scene files")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScene(path)
			if err != nil {
				t.Fatalf("LoadScene() error: %v", err)
			}
			if len(s.Objects) == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected objects and lights, got %d and %d", len(s.Objects), len(s.Lights))
			}
		})
	}
}
