package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	HitPixels       int           // Pixels whose primary ray hit an object
	MissPixels      int           // Pixels whose primary ray escaped (written black)
	NumWorkers      int           // Workers used by the pool
	NumTasks        int           // Row bands processed
	MeanLuminance   float64       // Mean pixel luminance in [0,1]
	LuminanceStdDev float64       // Standard deviation of pixel luminance
	Duration        time.Duration // Wall-clock render time
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// pixelLuminances returns the luminance of every RGB triple in [0,1]
func pixelLuminances(pixels []byte) []float64 {
	luminances := make([]float64, len(pixels)/3)
	for p := range luminances {
		color := core.NewVec3(float64(pixels[p*3]), float64(pixels[p*3+1]), float64(pixels[p*3+2]))
		luminances[p] = color.Divide(255.0).Luminance()
	}
	return luminances
}

// CalculateLuminanceStats returns the mean and standard deviation of pixel
// luminance for an RGB buffer. An empty buffer yields zeros and a single pixel
// has zero deviation.
func CalculateLuminanceStats(pixels []byte) (mean, stdDev float64) {
	luminances := pixelLuminances(pixels)
	switch len(luminances) {
	case 0:
		return 0, 0
	case 1:
		return luminances[0], 0
	}
	return stat.MeanStdDev(luminances, nil)
}
