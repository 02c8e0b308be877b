package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	tri := NewTriangle(
		core.NewPoint3(0, 0, 0),
		core.NewPoint3(1, 0, 0),
		core.NewPoint3(0, 1, 0),
	)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
	}{
		{"inside", core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)), true},
		{"outside hypotenuse", core.NewRay(core.NewPoint3(0.75, 0.75, 1), core.NewVec3(0, 0, -1)), false},
		{"outside negative u", core.NewRay(core.NewPoint3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1)), false},
		{"parallel", core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)), false},
		{"behind origin", core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tri.Hit(tt.ray, 0.001, 1000.0)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-1.0) > 1e-9 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}
		})
	}
}

func TestTriangle_Normal(t *testing.T) {
	tri := NewTriangle(
		core.NewPoint3(0, 0, 0),
		core.NewPoint3(1, 0, 0),
		core.NewPoint3(0, 1, 0),
	)

	if tri.Normal() != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", tri.Normal())
	}

	// A ray hitting the back face gets a flipped normal
	ray := core.NewRay(core.NewPoint3(0.2, 0.2, -1), core.NewVec3(0, 0, 1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit")
	}
	if hit.Normal != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected flipped normal (0,0,-1), got %v", hit.Normal)
	}
}
