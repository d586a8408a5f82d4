package renderer

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"

	"github.com/linuxmatters/asciireel/internal/config"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// DecodeError reports an image that could not be opened or decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TargetHeight derives the row count for a still image rendered at
// targetWidth columns, correcting for the cell aspect ratio. Never below 1.
func TargetHeight(srcWidth, srcHeight, targetWidth int) int {
	if srcWidth <= 0 || srcHeight <= 0 || targetWidth <= 0 {
		return 1
	}
	h := int(math.Round(float64(srcHeight) / float64(srcWidth) * float64(targetWidth) * config.AspectCorrection))
	if h < 1 {
		return 1
	}
	return h
}

// Rasterize scales img to width x height and quantizes every pixel
func Rasterize(img image.Image, width, height int, p Palette) Frame {
	src := scale(img, width, height)
	b := src.Bounds()

	rows := make([]string, height)
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		sb.Grow(width)
		for x := 0; x < width; x++ {
			sb.WriteRune(p.Quantize(Brightness(src.At(b.Min.X+x, b.Min.Y+y))))
		}
		rows[y] = sb.String()
	}
	return newFrame(rows, width)
}

// scale resamples img to exactly width x height, skipping the copy when
// the source already has those dimensions
func scale(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// DecodeFile opens and decodes a BMP, PNG, JPEG or GIF image
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// RasterizeFile renders a pre-scaled video frame at the given dimensions
func RasterizeFile(path string, width, height int, p Palette) (Frame, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return Frame{}, err
	}
	return Rasterize(img, width, height, p), nil
}

// RasterizeStill renders a still image at targetWidth columns with a
// derived, aspect-corrected height
func RasterizeStill(path string, targetWidth int, p Palette) (Frame, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return Frame{}, err
	}
	b := img.Bounds()
	height := TargetHeight(b.Dx(), b.Dy(), targetWidth)
	return Rasterize(img, targetWidth, height, p), nil
}
