package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrMalformedBuffer means the buffer does not hold whole RGB triples
	ErrMalformedBuffer = errors.New("pixel buffer length is not a multiple of 3")
	// ErrDimensionMismatch means the pixel count does not fit the declared dimensions
	ErrDimensionMismatch = errors.New("pixel count does not match image dimensions")
)

// BufferLengthError reports a buffer whose length is not a multiple of 3
type BufferLengthError struct {
	Length int
}

func (e *BufferLengthError) Error() string {
	return fmt.Sprintf("%v: %d bytes", ErrMalformedBuffer, e.Length)
}

func (e *BufferLengthError) Unwrap() error { return ErrMalformedBuffer }

// DimensionMismatchError reports a pixel count that cannot form a
// width x height image
type DimensionMismatchError struct {
	Length int // Buffer length in bytes
	Width  int
	Height int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v: %d pixels (%d bytes) for %dx%d",
		ErrDimensionMismatch, e.Length/3, e.Length, e.Width, e.Height)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// BuildImage assembles a row-major RGB buffer into a width x height image.
// Pixel (x, y) is read from offset (y*width+x)*3 and its alpha is always 0.
func BuildImage(width, height int, pixels []byte) (*image.NRGBA, error) {
	if len(pixels)%3 != 0 {
		return nil, &BufferLengthError{Length: len(pixels)}
	}

	pixelCount := len(pixels) / 3
	if width <= 0 || height <= 0 ||
		pixelCount%width != 0 || pixelCount%height != 0 ||
		pixelCount < width*height {
		return nil, &DimensionMismatchError{Length: len(pixels), Width: width, Height: height}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	tasks := SplitRows(height, DefaultRowsPerTask)
	runRows(0, tasks, func(task RowTask) RowResult {
		for y := task.StartRow; y < task.EndRow; y++ {
			for x := 0; x < width; x++ {
				offset := (y*width + x) * 3
				img.SetNRGBA(x, y, color.NRGBA{
					R: pixels[offset],
					G: pixels[offset+1],
					B: pixels[offset+2],
					A: 0,
				})
			}
		}
		return RowResult{TaskID: task.TaskID}
	})

	return img, nil
}
