package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestInspectPixel_MatchesRender(t *testing.T) {
	s := scene.NewDefaultScene()
	s.Width, s.Height = 20, 20

	pixels, _, err := NewRaytracer(s, DefaultConfig()).Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, p := range [][2]int{{0, 0}, {10, 10}, {19, 3}, {15, 15}} {
		result, err := InspectPixel(s, p[0], p[1])
		if err != nil {
			t.Fatalf("InspectPixel(%d,%d) error: %v", p[0], p[1], err)
		}

		offset := (p[0]*s.Width + p[1]) * 3
		expected := [3]uint8{pixels[offset], pixels[offset+1], pixels[offset+2]}
		if result.Pixel != expected {
			t.Errorf("Pixel (%d,%d): inspect %v, render %v", p[0], p[1], result.Pixel, expected)
		}
	}
}

func TestInspectPixel_HitAndMiss(t *testing.T) {
	s := scene.New(forwardCamera(), 11, 11)
	ball := s.Add("ball", geometry.NewSphere(core.NewPoint3(0, 0, -5), 1), material.NewMatte(core.NewVec3(1, 0, 0)))

	center, err := InspectPixel(s, 5, 5)
	if err != nil {
		t.Fatalf("InspectPixel() error: %v", err)
	}
	if !center.Hit || center.ObjectID != ball || center.Object.Name != "ball" {
		t.Fatalf("Expected center pixel to hit the ball, got %+v", center)
	}
	if center.HitRecord.T < 3.99 || center.HitRecord.T > 4.01 {
		t.Errorf("Expected distance ~4, got %f", center.HitRecord.T)
	}

	corner, err := InspectPixel(s, 0, 0)
	if err != nil {
		t.Fatalf("InspectPixel() error: %v", err)
	}
	if corner.Hit || corner.Object != nil || corner.Pixel != [3]uint8{} {
		t.Errorf("Expected corner pixel to miss, got %+v", corner)
	}
}

func TestInspectPixel_OutOfRange(t *testing.T) {
	s := scene.New(forwardCamera(), 4, 4)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if _, err := InspectPixel(s, p[0], p[1]); err == nil {
			t.Errorf("Expected error for pixel %v", p)
		}
	}
}
