package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrDegenerateCamera is returned when the camera cannot form a view basis
var ErrDegenerateCamera = errors.New("degenerate camera")

// ViewBasis is the camera's orthonormal frame: U points right, V up and W
// backwards (away from the look-at center).
type ViewBasis struct {
	U, V, W core.Vec3
}

// NewViewBasis derives the view basis from eye, center and up
func NewViewBasis(cam scene.Camera) (ViewBasis, error) {
	w, err := cam.Eye.Sub(cam.Center).NormalizeChecked()
	if err != nil {
		return ViewBasis{}, fmt.Errorf("%w: eye and center coincide: %w", ErrDegenerateCamera, err)
	}
	u, err := cam.Up.Cross(w).NormalizeChecked()
	if err != nil {
		return ViewBasis{}, fmt.Errorf("%w: up vector %v is parallel to the view direction: %w", ErrDegenerateCamera, cam.Up, err)
	}
	return ViewBasis{U: u, V: w.Cross(u), W: w}, nil
}

// RayGenerator builds primary rays for pixel coordinates. The basis and the
// field of view scale are computed once and shared by every pixel.
type RayGenerator struct {
	origin     core.Point3
	basis      ViewBasis
	scale      float64 // Offset per pixel in view-plane units
	halfWidth  float64
	halfHeight float64
}

// NewRayGenerator creates a ray generator for an image of width x height pixels.
// Both pixel axes are scaled by a factor derived from the image height, so the
// horizontal extent only matches the vertical field of view for square images.
func NewRayGenerator(cam scene.Camera, width, height int) (*RayGenerator, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions must be positive, got %dx%d", scene.ErrInvalidScene, width, height)
	}

	basis, err := NewViewBasis(cam)
	if err != nil {
		return nil, err
	}

	fovyRadians := cam.FovY * math.Pi / 180.0
	halfHeight := 0.5 * float64(height)

	return &RayGenerator{
		origin:     cam.Eye,
		basis:      basis,
		scale:      0.5 * math.Tan(fovyRadians/2) / halfHeight,
		halfWidth:  0.5 * float64(width),
		halfHeight: halfHeight,
	}, nil
}

// Basis returns the view basis
func (g *RayGenerator) Basis() ViewBasis {
	return g.basis
}

// Ray returns the primary ray through the center of pixel (row i, column j)
func (g *RayGenerator) Ray(i, j int) core.Ray {
	weightA := g.scale * ((float64(j) + 0.5) - g.halfWidth)
	weightB := g.scale * (g.halfHeight - (0.5 + float64(i)))

	direction := g.basis.U.Multiply(weightA).
		Add(g.basis.V.Multiply(weightB)).
		Subtract(g.basis.W).
		Normalize()

	return core.NewRay(g.origin, direction)
}
