package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Illuminate(t *testing.T) {
	light := NewPointLight(core.NewPoint3(0, 4, 0), core.NewVec3(1, 0.5, 0.25))

	ill := light.Illuminate(core.NewPoint3(0, 0, 0))

	if ill.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction (0,1,0), got %v", ill.Direction)
	}
	if ill.Distance != 4 {
		t.Errorf("Expected distance 4, got %f", ill.Distance)
	}
	if ill.Color != core.NewVec3(1, 0.5, 0.25) {
		t.Errorf("Expected unattenuated color, got %v", ill.Color)
	}
	if light.Type() != LightTypePoint {
		t.Errorf("Expected point type, got %s", light.Type())
	}
}

func TestPointLight_AtLightPosition(t *testing.T) {
	light := NewPointLight(core.NewPoint3(1, 1, 1), core.NewVec3(1, 1, 1))

	ill := light.Illuminate(core.NewPoint3(1, 1, 1))
	if ill.Color != (core.Vec3{}) {
		t.Errorf("Expected no light at the light position, got %v", ill.Color)
	}
}

func TestDirectionalLight_Illuminate(t *testing.T) {
	light := NewDirectionalLight(core.NewVec3(0, -2, 0), core.NewVec3(0.7, 0.7, 0.7))

	for _, p := range []core.Point3{core.NewPoint3(0, 0, 0), core.NewPoint3(100, -5, 3)} {
		ill := light.Illuminate(p)
		if ill.Direction != core.NewVec3(0, 1, 0) {
			t.Errorf("Expected direction toward light (0,1,0), got %v", ill.Direction)
		}
		if !math.IsInf(ill.Distance, 1) {
			t.Errorf("Expected infinite distance, got %f", ill.Distance)
		}
	}
}

func TestSpotLight_Falloff(t *testing.T) {
	light := NewSpotLight(
		core.NewPoint3(0, 10, 0),
		core.NewPoint3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		30.0, // total cone angle
		5.0,  // falloff band
	)

	tests := []struct {
		name     string
		point    core.Point3
		expected float64
	}{
		{"center of cone", core.NewPoint3(0, 0, 0), 1.0},
		{"inside inner cone", core.NewPoint3(10*math.Tan(20*math.Pi/180), 0, 0), 1.0},
		{"outside cone", core.NewPoint3(10*math.Tan(40*math.Pi/180), 0, 0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ill := light.Illuminate(tt.point)
			if math.Abs(ill.Color.X-tt.expected) > 1e-9 {
				t.Errorf("Expected intensity %f, got %f", tt.expected, ill.Color.X)
			}
		})
	}

	edge := light.Illuminate(core.NewPoint3(10*math.Tan(27.5*math.Pi/180), 0, 0))
	if edge.Color.X <= 0 || edge.Color.X >= 1 {
		t.Errorf("Expected partial intensity in the falloff band, got %f", edge.Color.X)
	}
}
