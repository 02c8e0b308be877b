package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultRowsPerTask is the band height handed to each worker task
const DefaultRowsPerTask = 8

// Config contains rendering configuration
type Config struct {
	NumWorkers  int // Number of parallel workers (0 = runtime.NumCPU())
	RowsPerTask int // Rows per worker task (0 = DefaultRowsPerTask)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers:  0,
		RowsPerTask: DefaultRowsPerTask,
	}
}

// Raytracer renders a scene into a flat RGB buffer
type Raytracer struct {
	scene  *scene.Scene
	config Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config Config) *Raytracer {
	if config.RowsPerTask <= 0 {
		config.RowsPerTask = DefaultRowsPerTask
	}
	return &Raytracer{scene: s, config: config}
}

// Render traces one primary ray per pixel and returns a row-major RGB buffer
// of length width*height*3. Rows are split into bands that workers fill
// independently; each band owns a disjoint slice of the buffer.
func (rt *Raytracer) Render() ([]byte, RenderStats, error) {
	start := time.Now()

	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("cannot render scene: %w", err)
	}

	width, height := rt.scene.Width, rt.scene.Height
	generator, err := NewRayGenerator(rt.scene.Camera, width, height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("cannot render scene: %w", err)
	}
	shader := NewShader(rt.scene, rt.scene.MaxDepth)

	pixels := make([]byte, width*height*3)
	tasks := SplitRows(height, rt.config.RowsPerTask)

	logger := core.Logger()
	logger.Info("render started",
		"width", width,
		"height", height,
		"objects", len(rt.scene.Objects),
		"lights", len(rt.scene.Lights),
		"max_depth", shader.MaxDepth())

	results, numWorkers := runRows(rt.config.NumWorkers, tasks, func(task RowTask) RowResult {
		band := pixels[task.StartRow*width*3 : task.EndRow*width*3]
		return renderBand(generator, shader, rt.scene, width, task, band)
	})
	logger.Debug("worker pool drained", "workers", numWorkers, "tasks", len(tasks))

	stats := RenderStats{
		Width:       width,
		Height:      height,
		TotalPixels: width * height,
		NumWorkers:  numWorkers,
		NumTasks:    len(tasks),
	}
	for _, result := range results {
		stats.HitPixels += result.HitPixels
		stats.MissPixels += result.MissPixels
	}
	stats.MeanLuminance, stats.LuminanceStdDev = CalculateLuminanceStats(pixels)
	stats.Duration = time.Since(start)

	logger.Info("render finished",
		"duration", stats.Duration,
		"hit_pixels", stats.HitPixels,
		"miss_pixels", stats.MissPixels)

	return pixels, stats, nil
}

// renderBand fills band, the slice of the output buffer covering the task's
// rows. Pixel (i, j) lives at ((i-StartRow)*width + j)*3 within the band.
func renderBand(generator *RayGenerator, shader *Shader, s *scene.Scene, width int, task RowTask, band []byte) RowResult {
	result := RowResult{TaskID: task.TaskID}
	first := task.StartRow * width

	for idx := first; idx < task.EndRow*width; idx++ {
		i, j := idx/width, idx%width
		offset := (idx - first) * 3

		ray := generator.Ray(i, j)
		id, ok := s.Intersect(ray)
		if !ok {
			band[offset], band[offset+1], band[offset+2] = 0, 0, 0
			result.MissPixels++
			continue
		}

		color := shader.Shade(ray, id, 0)
		band[offset] = toByte(color.X)
		band[offset+1] = toByte(color.Y)
		band[offset+2] = toByte(color.Z)
		result.HitPixels++
	}

	return result
}

// toByte maps a channel in [0,1] to [0,255]. Values outside that range are
// not clamped and wrap.
func toByte(c float64) uint8 {
	return uint8(int(math.Round(255 * c)))
}
