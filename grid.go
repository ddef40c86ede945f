package maze

import (
	"fmt"
	"image"
)

// The number of permanent wall layers along each edge of a WallGrid.
const borderWidth = 2

// A single axis-aligned step. Exactly one of DX and DY is nonzero.
type Vector struct {
	DX, DY int
}

// Selects which way Vector.Rotate turns.
type Sense int

const (
	Clockwise        Sense = 1
	CounterClockwise Sense = -1
)

// Returns the vector rotated 90 degrees in the given sense. Clockwise takes
// (1, 0) to (0, -1), and four rotations in the same sense are the identity.
func (v Vector) Rotate(s Sense) Vector {
	return Vector{
		DX: v.DY * int(s),
		DY: -v.DX * int(s),
	}
}

// Returns the vector pointing the opposite way.
func (v Vector) Reverse() Vector {
	return Vector{DX: -v.DX, DY: -v.DY}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d, %d)", v.DX, v.DY)
}

// Returns p moved by one step of v.
func (v Vector) From(p image.Point) image.Point {
	return image.Pt(p.X+v.DX, p.Y+v.DY)
}

// The four neighbor directions, in the order the path backtracer tries
// them: right, down, left, up.
var neighborOrder = [4]Vector{
	{DX: 1, DY: 0},
	{DX: 0, DY: 1},
	{DX: -1, DY: 0},
	{DX: 0, DY: -1},
}

// A 2D grid of cells that are each either a wall or open. The two outermost
// layers of cells are always walls. Create using NewWallGrid.
type WallGrid struct {
	Width  int
	Height int
	walls  []bool
}

// Allocates a grid where every cell is a wall. Width and height include the
// border, so both must be large enough to leave at least one interior cell.
func NewWallGrid(width, height int) (*WallGrid, error) {
	minSize := 2*borderWidth + 1
	if (width < minSize) || (height < minSize) {
		return nil, fmt.Errorf("A %dx%d wall grid has no interior: both "+
			"dimensions must be at least %d", width, height, minSize)
	}
	cellCount := width * height
	// Check for overflow.
	if (cellCount <= 0) || (cellCount/width != height) {
		return nil, fmt.Errorf("The %dx%d wall grid is too big", width, height)
	}
	toReturn := &WallGrid{
		Width:  width,
		Height: height,
		walls:  make([]bool, cellCount),
	}
	for i := range toReturn.walls {
		toReturn.walls[i] = true
	}
	return toReturn, nil
}

// Returns true if (x, y) is inside the grid.
func (g *WallGrid) Contains(x, y int) bool {
	return (x >= 0) && (y >= 0) && (x < g.Width) && (y < g.Height)
}

// Returns true if (x, y) is in the open interior, i.e. not part of the
// permanent border.
func (g *WallGrid) Interior(x, y int) bool {
	return (x >= borderWidth) && (y >= borderWidth) &&
		(x < g.Width-borderWidth) && (y < g.Height-borderWidth)
}

// Returns true if the cell is a wall. Cells outside of the grid are walls.
func (g *WallGrid) At(x, y int) bool {
	if !g.Contains(x, y) {
		return true
	}
	return g.walls[y*g.Width+x]
}

// Sets whether the cell is a wall. Panics if (x, y) is outside the grid, or
// if it attempts to open a border cell.
func (g *WallGrid) Set(x, y int, wall bool) {
	if !g.Contains(x, y) {
		panic(fmt.Sprintf("Cell (%d, %d) is outside the %dx%d grid", x, y,
			g.Width, g.Height))
	}
	if !wall && !g.Interior(x, y) {
		panic(fmt.Sprintf("Attempted to open border cell (%d, %d)", x, y))
	}
	g.walls[y*g.Width+x] = wall
}

// Makes every border cell a wall and every interior cell open.
func (g *WallGrid) Reset() {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.walls[y*g.Width+x] = !g.Interior(x, y)
		}
	}
}

// Returns an independent copy of the grid.
func (g *WallGrid) Clone() *WallGrid {
	toReturn := &WallGrid{
		Width:  g.Width,
		Height: g.Height,
		walls:  make([]bool, len(g.walls)),
	}
	copy(toReturn.walls, g.walls)
	return toReturn
}

// Returns true if both grids have the same size and contents.
func (g *WallGrid) Equal(other *WallGrid) bool {
	if (g.Width != other.Width) || (g.Height != other.Height) {
		return false
	}
	for i, w := range g.walls {
		if other.walls[i] != w {
			return false
		}
	}
	return true
}

// Returns the grid drawn as text, with '#' for walls and '.' for open cells.
// Useful for debugging.
func (g *WallGrid) String() string {
	toReturn := make([]byte, 0, (g.Width+1)*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) {
				toReturn = append(toReturn, '#')
			} else {
				toReturn = append(toReturn, '.')
			}
		}
		toReturn = append(toReturn, '\n')
	}
	return string(toReturn)
}
