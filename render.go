package maze

import (
	"image"

	"github.com/TeamKansas/mazeGenerator/raster"
)

// Converts between wall grid cells and blocks of pixels. Grid cell (1, 1)
// lands at the top-left corner of the image, so the outermost layer of
// border cells is never drawn.
type cellMapper struct {
	res int
}

// Returns the top-left pixel of the cell's block.
func (m cellMapper) origin(x, y int) image.Point {
	return image.Pt((x-1)*m.res, (y-1)*m.res)
}

// Returns the pixel at the center of the cell's block.
func (m cellMapper) center(x, y int) image.Point {
	return m.origin(x, y).Add(image.Pt(m.res/2, m.res/2))
}

// Fills the cell's block with the buffer's current color.
func (m cellMapper) fillCell(b *raster.Buffer, x, y int) {
	o := m.origin(x, y)
	span := 2 * (m.res / 2)
	b.FillRect(o.X, o.Y, o.X+span, o.Y+span)
}

// Draws the walls of the grid as line segments connecting the centers of
// adjacent wall cells, using the buffer's current color.
func DrawWalls(b *raster.Buffer, g *WallGrid, res int) {
	m := cellMapper{res: res}
	for x := g.Width - 2; x > 0; x-- {
		for y := g.Height - 2; y > 0; y-- {
			if !g.At(x, y) {
				continue
			}
			c := m.center(x, y)
			if g.At(x+1, y) {
				b.OrthoLine(c.X, c.Y, raster.Right, res)
			}
			if g.At(x, y+1) {
				b.OrthoLine(c.X, c.Y, raster.Down, res)
			}
			if g.At(x-1, y) {
				b.OrthoLine(c.X, c.Y, raster.Left, res)
			}
			if g.At(x, y-1) {
				b.OrthoLine(c.X, c.Y, raster.Up, res)
			}
		}
	}
}

// Returns the heatmap color for the given depth, fading from green at the
// start cell to blue at the farthest reached cell.
func heatmapColor(depth, levels int) (uint8, uint8, uint8) {
	gradient := depth * 255 / (levels + 1)
	return 0, uint8(255 - gradient), uint8(gradient)
}

// Fills every reached cell with a color based on its distance from the start.
// Changes the buffer's current color.
func DrawHeatmap(b *raster.Buffer, f *DistanceField, res int) {
	m := cellMapper{res: res}
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			depth := f.Depth(x, y)
			if depth == 0 {
				continue
			}
			b.SetRGB(heatmapColor(depth, f.Levels))
			m.fillCell(b, x, y)
		}
	}
}

// Fills the cells along the path using the buffer's current color.
func DrawPath(b *raster.Buffer, path []image.Point, res int) {
	m := cellMapper{res: res}
	for _, p := range path {
		m.fillCell(b, p.X, p.Y)
	}
}
