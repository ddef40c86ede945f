// This package defines a simple in-memory raster image with a "current color"
// and a handful of drawing primitives. Buffers satisfy go's image.Image
// interface, and can be written to disk using the tiff package.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// The largest width or height a Buffer may have, since image dimensions are
// stored as 16-bit values.
const MaxDimension = 0xffff

// Selects the number of 8-bit channels stored per pixel.
type Mode uint8

const (
	Grayscale Mode = 1
	Truecolor Mode = 3
)

func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "grayscale"
	case Truecolor:
		return "truecolor"
	}
	return fmt.Sprintf("Unknown raster mode: %d", uint8(m))
}

// The direction in which OrthoLine draws. Down is towards increasing y.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

// Returns the unit step for the direction.
func (d Direction) step() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	panic(fmt.Sprintf("Invalid raster direction: %d", uint8(d)))
}

// Holds width * height pixels, each consisting of Mode channels, in row-major
// order. Create using New.
type Buffer struct {
	width  uint16
	height uint16
	mode   Mode
	// The current color. For grayscale buffers only the first entry is used,
	// and holds the luminance of the color passed to SetColor.
	color [3]uint8
	pix   []uint8
}

// Allocates a new buffer, initially black. Returns an error if either
// dimension is 0 or doesn't fit in 16 bits.
func New(width, height int, mode Mode) (*Buffer, error) {
	if (width < 1) || (height < 1) {
		return nil, fmt.Errorf("Invalid raster size %dx%d: width and height "+
			"must be at least 1", width, height)
	}
	if (width > MaxDimension) || (height > MaxDimension) {
		return nil, fmt.Errorf("Invalid raster size %dx%d: dimensions are "+
			"limited to %d", width, height, MaxDimension)
	}
	if (mode != Grayscale) && (mode != Truecolor) {
		return nil, fmt.Errorf("Invalid raster mode: %s", mode)
	}
	return &Buffer{
		width:  uint16(width),
		height: uint16(height),
		mode:   mode,
		pix:    make([]uint8, width*height*int(mode)),
	}, nil
}

func (b *Buffer) Width() int {
	return int(b.width)
}

func (b *Buffer) Height() int {
	return int(b.height)
}

func (b *Buffer) Mode() Mode {
	return b.mode
}

// Returns the number of bytes used by each pixel.
func (b *Buffer) Channels() int {
	return int(b.mode)
}

// Returns the underlying pixel data. Rows are stored top to bottom, with
// channels interleaved. The returned slice is not a copy.
func (b *Buffer) Pix() []uint8 {
	return b.pix
}

// Sets the color used by subsequent drawing operations.
func (b *Buffer) SetColor(c color.Color) {
	if b.mode == Grayscale {
		g := color.GrayModel.Convert(c).(color.Gray)
		b.color = [3]uint8{g.Y, g.Y, g.Y}
		return
	}
	tmp := color.RGBAModel.Convert(c).(color.RGBA)
	b.color = [3]uint8{tmp.R, tmp.G, tmp.B}
}

// A shorthand for SetColor with an opaque RGB color.
func (b *Buffer) SetRGB(r, g, blue uint8) {
	b.SetColor(color.RGBA{r, g, blue, 255})
}

// Returns the current drawing color.
func (b *Buffer) Color() color.Color {
	if b.mode == Grayscale {
		return color.Gray{b.color[0]}
	}
	return color.RGBA{b.color[0], b.color[1], b.color[2], 255}
}

// Sets every pixel in the buffer to the current color.
func (b *Buffer) Fill() {
	b.span(0, len(b.pix)/int(b.mode))
}

// Writes count consecutive pixels starting at the byte offset i. The caller
// must ensure the whole span lies inside the buffer.
func (b *Buffer) span(i, count int) {
	n := int(b.mode)
	for ; count > 0; count-- {
		copy(b.pix[i:i+n], b.color[:n])
		i += n
	}
}

// Returns the byte offset of the pixel at (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*int(b.width) + x) * int(b.mode)
}

// Returns true if (x, y) lies inside the buffer.
func (b *Buffer) inBounds(x, y int) bool {
	return (x >= 0) && (y >= 0) && (x < int(b.width)) && (y < int(b.height))
}

// Sets the pixel at (x, y) to the current color. Returns false, and does
// nothing, if the pixel is outside of the buffer.
func (b *Buffer) SetPixel(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	b.span(b.offset(x, y), 1)
	return true
}

// Draws a horizontal or vertical line of length+1 pixels starting at (x, y)
// and extending in the given direction. Any part of the line outside of the
// buffer is skipped.
func (b *Buffer) OrthoLine(x, y int, dir Direction, length int) {
	if length < 0 {
		return
	}
	dx, dy := dir.step()
	// Normalize the line so that it always runs towards positive x or y.
	x2, y2 := x+dx*length, y+dy*length
	if x2 < x {
		x, x2 = x2, x
	}
	if y2 < y {
		y, y2 = y2, y
	}
	if dy == 0 {
		b.hline(x, x2, y)
		return
	}
	if (x < 0) || (x >= int(b.width)) {
		return
	}
	y, y2, ok := clip(y, y2, int(b.height))
	if !ok {
		return
	}
	for ; y <= y2; y++ {
		b.span(b.offset(x, y), 1)
	}
}

// Draws the pixels from (x1, y) through (x2, y), clipped. Requires x1 <= x2.
func (b *Buffer) hline(x1, x2, y int) {
	if (y < 0) || (y >= int(b.height)) {
		return
	}
	x1, x2, ok := clip(x1, x2, int(b.width))
	if !ok {
		return
	}
	b.span(b.offset(x1, y), x2-x1+1)
}

// Clips the inclusive range [a, b] to [0, limit). Returns false if nothing
// remains.
func clip(a, b, limit int) (int, int, bool) {
	if (a >= limit) || (b < 0) {
		return 0, 0, false
	}
	if a < 0 {
		a = 0
	}
	if b >= limit {
		b = limit - 1
	}
	return a, b, true
}

// Returns the corners of the rectangle sorted so that x1 <= x2 and y1 <= y2.
func normalizeRect(x1, y1, x2, y2 int) (int, int, int, int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2
}

// Fills the rectangle with opposite corners (x1, y1) and (x2, y2), both
// inclusive. Rectangles entirely outside the buffer draw nothing.
func (b *Buffer) FillRect(x1, y1, x2, y2 int) {
	x1, y1, x2, y2 = normalizeRect(x1, y1, x2, y2)
	x1, x2, ok := clip(x1, x2, int(b.width))
	if !ok {
		return
	}
	y1, y2, ok = clip(y1, y2, int(b.height))
	if !ok {
		return
	}
	for y := y1; y <= y2; y++ {
		b.span(b.offset(x1, y), x2-x1+1)
	}
}

// Draws the outline of the rectangle with opposite corners (x1, y1) and
// (x2, y2), clipped to the buffer.
func (b *Buffer) TraceRect(x1, y1, x2, y2 int) {
	x1, y1, x2, y2 = normalizeRect(x1, y1, x2, y2)
	b.hline(x1, x2, y1)
	b.hline(x1, x2, y2)
	b.OrthoLine(x1, y1, Down, y2-y1)
	b.OrthoLine(x2, y1, Down, y2-y1)
}

func (b *Buffer) ColorModel() color.Model {
	if b.mode == Grayscale {
		return color.GrayModel
	}
	return color.RGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(b.width), int(b.height))
}

func (b *Buffer) At(x, y int) color.Color {
	if !b.inBounds(x, y) {
		return color.Transparent
	}
	i := b.offset(x, y)
	if b.mode == Grayscale {
		return color.Gray{b.pix[i]}
	}
	return color.RGBA{b.pix[i], b.pix[i+1], b.pix[i+2], 255}
}
