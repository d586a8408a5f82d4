package renderer

import (
	"strings"
)

// Frame is one rasterized character grid. Frames are immutable once built.
type Frame struct {
	rows  []string
	width int
	text  string
}

// newFrame takes ownership of rows; every row must hold width characters
func newFrame(rows []string, width int) Frame {
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	return Frame{rows: rows, width: width, text: sb.String()}
}

// Width returns the number of characters per row
func (f Frame) Width() int {
	return f.width
}

// Height returns the number of rows
func (f Frame) Height() int {
	return len(f.rows)
}

// Row returns row y without its line terminator
func (f Frame) Row(y int) string {
	return f.rows[y]
}

// String returns the frame as newline-terminated rows
func (f Frame) String() string {
	return f.text
}
