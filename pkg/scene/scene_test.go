package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func testCamera() Camera {
	return Camera{
		Eye:    core.NewPoint3(0, 0, 0),
		Center: core.NewPoint3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		FovY:   45,
	}
}

func TestScene_IntersectNearest(t *testing.T) {
	s := New(testCamera(), 4, 4)
	mat := material.NewMatte(core.NewVec3(1, 1, 1))
	far := s.Add("far", geometry.NewSphere(core.NewPoint3(0, 0, -10), 1), mat)
	near := s.Add("near", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), mat)
	s.Add("aside", geometry.NewSphere(core.NewPoint3(5, 0, -5), 1), mat)

	ray := core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))
	id, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit")
	}
	if id != near {
		t.Errorf("Expected nearest object %d, got %d", near, id)
	}

	// Ray starting between the spheres sees only the far one ahead
	ray = core.NewRay(core.NewPoint3(0, 0, -7), core.NewVec3(0, 0, -1))
	if id, ok := s.Intersect(ray); !ok || id != far {
		t.Errorf("Expected far object %d, got %d (hit=%v)", far, id, ok)
	}
}

func TestScene_IntersectTieResolvesToLowestID(t *testing.T) {
	s := New(testCamera(), 4, 4)
	mat := material.NewMatte(core.NewVec3(1, 1, 1))
	first := s.Add("first", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), mat)
	s.Add("duplicate", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), mat)

	ray := core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))
	for i := 0; i < 10; i++ {
		id, ok := s.Intersect(ray)
		if !ok || id != first {
			t.Fatalf("Expected deterministic tie resolution to %d, got %d", first, id)
		}
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	s := New(testCamera(), 4, 4)
	if _, ok := s.Intersect(core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected miss in empty scene")
	}

	s.Add("behind", geometry.NewSphere(core.NewPoint3(0, 0, 5), 1), material.NewMatte(core.NewVec3(1, 1, 1)))
	if _, ok := s.Intersect(core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected miss for object behind the ray")
	}
}

func TestScene_HitObject(t *testing.T) {
	s := New(testCamera(), 4, 4)
	id := s.Add("ball", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), material.NewMatte(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := s.HitObject(id, ray)
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestScene_Occluded(t *testing.T) {
	s := New(testCamera(), 4, 4)
	s.Add("blocker", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), material.NewMatte(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, -1))

	if !s.Occluded(ray, 10) {
		t.Error("Expected occlusion before distance 10")
	}
	if s.Occluded(ray, 3) {
		t.Error("Expected no occlusion before distance 3")
	}
}

func TestScene_Validate(t *testing.T) {
	mat := material.NewMatte(core.NewVec3(1, 1, 1))
	sphere := geometry.NewSphere(core.NewPoint3(0, 0, -5), 1)

	tests := []struct {
		name    string
		modify  func(s *Scene)
		wantErr bool
	}{
		{"valid", func(s *Scene) { s.Add("ball", sphere, mat) }, false},
		{"zero width", func(s *Scene) { s.Width = 0 }, true},
		{"negative height", func(s *Scene) { s.Height = -1 }, true},
		{"negative depth", func(s *Scene) { s.MaxDepth = -1 }, true},
		{"missing material", func(s *Scene) { s.Add("ball", sphere, nil) }, true},
		{"missing shape", func(s *Scene) { s.Add("ball", nil, mat) }, true},
		{"bad material", func(s *Scene) {
			s.Add("ball", sphere, &material.Material{Reflectivity: 0.8, Transparency: 0.8, RefractiveIndex: 1.5})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testCamera(), 4, 4)
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestMirrorsScene_MirrorsFaceEachOther(t *testing.T) {
	s := NewMirrorsScene()

	// A horizontal ray bouncing between the mirrors hits them in turn
	ray := core.NewRay(core.NewPoint3(0, 2, 0), core.NewVec3(1, 0, 0))
	id, hit, ok := s.Hit(ray)
	if !ok || s.Object(id).Name != "mirror-right" {
		t.Fatalf("Expected right mirror, got %v (hit=%v)", id, ok)
	}

	bounce := core.NewRay(hit.Point, ray.Direction.Reflect(hit.Normal))
	id, _, ok = s.Hit(bounce)
	if !ok || s.Object(id).Name != "mirror-left" {
		t.Errorf("Expected left mirror after bounce, got %v (hit=%v)", id, ok)
	}
}
