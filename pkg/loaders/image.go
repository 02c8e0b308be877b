package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for image formats other than png, bmp and tiff
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists the supported output encodings
var Formats = []Format{FormatPNG, FormatBMP, FormatTIFF}

// ParseFormat converts a format name or file extension (with or without the
// leading dot) into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Opaque copies img into an RGB image with every alpha set to 255. Rendered
// grids carry alpha 0, which most viewers would show as fully transparent.
func Opaque(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 255
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}
	return out
}

// Encode writes img to w as an opaque RGB image in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	opaque := Opaque(img)

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, opaque)
	case FormatBMP:
		err = bmp.Encode(w, opaque)
	case FormatTIFF:
		err = tiff.Encode(w, opaque, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return nil
}

// SaveImage writes img to filename, creating parent directories as needed
func SaveImage(filename string, img image.Image, format Format) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

// LoadPixels decodes a PNG, BMP or TIFF image into a row-major RGB buffer
func LoadPixels(filename string) (width, height int, pixels []byte, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decoders for bmp and tiff are registered by the x/image imports
	img, _, err := image.Decode(file)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]byte, 0, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}

	return width, height, pixels, nil
}
