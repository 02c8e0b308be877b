package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestBox_Hit_AxisAligned(t *testing.T) {
	box := NewAxisAlignedBox(core.NewPoint3(0, 0, 0), core.NewVec3(1, 1, 1))

	tests := []struct {
		name           string
		rayOrigin      core.Point3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"front face", core.NewPoint3(0, 0, 5), core.NewVec3(0, 0, -1), 4.0, true, core.NewVec3(0, 0, 1)},
		{"back face", core.NewPoint3(0.2, 0.3, -5), core.NewVec3(0, 0, 1), 4.0, true, core.NewVec3(0, 0, -1)},
		{"right face", core.NewPoint3(3, 0.5, 0), core.NewVec3(-1, 0, 0), 2.0, true, core.NewVec3(1, 0, 0)},
		{"left face", core.NewPoint3(-3, 0, 0.5), core.NewVec3(1, 0, 0), 2.0, true, core.NewVec3(-1, 0, 0)},
		{"top face", core.NewPoint3(0, 4, 0), core.NewVec3(0, -1, 0), 3.0, true, core.NewVec3(0, 1, 0)},
		{"bottom face", core.NewPoint3(0.5, -4, 0.5), core.NewVec3(0, 1, 0), 3.0, true, core.NewVec3(0, -1, 0)},
		{"from inside", core.NewPoint3(0, 0, 0), core.NewVec3(1, 0, 0), 1.0, false, core.NewVec3(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := box.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestBox_Hit_Miss(t *testing.T) {
	box := NewAxisAlignedBox(core.NewPoint3(0, 0, 0), core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewPoint3(2, 0, 5), core.NewVec3(0, 0, -1))

	if hit, isHit := box.Hit(ray, 0.001, 1000.0); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestBox_Hit_NonUniformSize(t *testing.T) {
	box := NewAxisAlignedBox(core.NewPoint3(0, 1, 0), core.NewVec3(2, 0.5, 1))

	// Inside the X extent, outside the Y extent
	ray := core.NewRay(core.NewPoint3(1.5, 2, 5), core.NewVec3(0, 0, -1))
	if _, isHit := box.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected miss above the box")
	}

	ray = core.NewRay(core.NewPoint3(1.5, 1.2, 5), core.NewVec3(0, 0, -1))
	hit, isHit := box.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on the front face")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
}

func TestBox_Hit_Rotated(t *testing.T) {
	// 45 degrees around Y turns the front face toward +X+Z
	box := NewBox(core.NewPoint3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0))
	ray := core.NewRay(core.NewPoint3(0.5, 0, 5), core.NewVec3(0, 0, -1))

	hit, isHit := box.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expectedT := 5 - (math.Sqrt2 - 0.5)
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
	}

	expectedNormal := core.NewVec3(math.Sqrt2/2, 0, math.Sqrt2/2)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}
