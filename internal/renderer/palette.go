package renderer

import (
	"errors"
	"image/color"
	"math"
)

// ErrEmptyPalette is returned when a palette has no characters
var ErrEmptyPalette = errors.New("palette must contain at least one character")

// Palette is an ordered set of characters from dimmest to brightest
type Palette struct {
	chars []rune
}

// NewPalette builds a palette from s, dimmest character first
func NewPalette(s string) (Palette, error) {
	chars := []rune(s)
	if len(chars) == 0 {
		return Palette{}, ErrEmptyPalette
	}
	return Palette{chars: chars}, nil
}

// MustPalette is NewPalette for compile-time constants
func MustPalette(s string) Palette {
	p, err := NewPalette(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of brightness levels
func (p Palette) Len() int {
	return len(p.chars)
}

// String returns the palette characters in order
func (p Palette) String() string {
	return string(p.chars)
}

// Index maps a brightness in [0, 1] to a palette index.
// The result is clamp(floor(b*N), 0, N-1); NaN maps to 0.
func (p Palette) Index(brightness float64) int {
	n := len(p.chars)
	if n == 0 || math.IsNaN(brightness) {
		return 0
	}
	idx := math.Floor(brightness * float64(n))
	if idx < 0 {
		return 0
	}
	if idx > float64(n-1) {
		return n - 1
	}
	return int(idx)
}

// Quantize returns the character for a brightness in [0, 1]
func (p Palette) Quantize(brightness float64) rune {
	return p.chars[p.Index(brightness)]
}

// Brightness returns the HSB brightness of c: the largest of its
// non-premultiplied R, G, B channels scaled to [0, 1].
func Brightness(c color.Color) float64 {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	m := max(n.R, n.G, n.B)
	return float64(m) / 0xffff
}
