package maze

import (
	"errors"
	"fmt"
	"image"
)

// Returned by Backtrace if the goal cell was never reached by Label.
var ErrUnreachable = errors.New("the goal cell is not reachable from the " +
	"start cell")

// Returned by Backtrace if the distance field doesn't lead back to the start,
// which means it wasn't produced by Label for the same start cell.
var ErrBrokenField = errors.New("the distance field is inconsistent")

// Returns true if e came from failing to find a solution path.
func IsSolveError(e error) bool {
	return errors.Is(e, ErrUnreachable) || errors.Is(e, ErrBrokenField)
}

// Holds, for every cell of a WallGrid, the number of steps needed to reach it
// from the start cell, plus one. A depth of 0 means the cell was never
// reached. Create using Label.
type DistanceField struct {
	Width  int
	Height int
	Start  image.Point
	// The largest depth in the field.
	Levels int
	depths []int
}

// Returns the depth of the cell, or 0 if the cell wasn't reached or lies
// outside the field.
func (f *DistanceField) Depth(x, y int) int {
	if (x < 0) || (y < 0) || (x >= f.Width) || (y >= f.Height) {
		return 0
	}
	return f.depths[y*f.Width+x]
}

// Returns true if Label reached the cell.
func (f *DistanceField) Reached(x, y int) bool {
	return f.Depth(x, y) > 0
}

// Returns the number of cells that were reached.
func (f *DistanceField) ReachedCount() int {
	toReturn := 0
	for _, d := range f.depths {
		if d > 0 {
			toReturn++
		}
	}
	return toReturn
}

// Computes the distance of every open cell from start by sweeping the whole
// grid repeatedly. Each sweep extends the frontier by one step, and the loop
// ends after a sweep that changes nothing. The start cell is always given a
// depth of 1, even if it's a wall.
func Label(g *WallGrid, start image.Point) *DistanceField {
	if !g.Contains(start.X, start.Y) {
		panic(fmt.Sprintf("Start cell %s is outside the %dx%d grid", start,
			g.Width, g.Height))
	}
	f := &DistanceField{
		Width:  g.Width,
		Height: g.Height,
		Start:  start,
		depths: make([]int, g.Width*g.Height),
	}
	f.depths[start.Y*g.Width+start.X] = 1
	current := 1
	changed := true
	for changed {
		changed = false
		for y := 1; y < g.Height-1; y++ {
			for x := 1; x < g.Width-1; x++ {
				if f.depths[y*g.Width+x] != current {
					continue
				}
				for _, v := range neighborOrder {
					nx, ny := x+v.DX, y+v.DY
					i := ny*g.Width + nx
					if g.At(nx, ny) || (f.depths[i] != 0) {
						continue
					}
					f.depths[i] = current + 1
					changed = true
				}
			}
		}
		if changed {
			current++
		}
	}
	f.Levels = current
	return f
}

// Follows strictly decreasing depths from goal back to the field's start
// cell. At each step the neighbors are tried in the order right, down, left,
// up. Returns the visited cells, beginning with goal and ending with the
// start.
func Backtrace(f *DistanceField, goal image.Point) ([]image.Point, error) {
	if !f.Reached(goal.X, goal.Y) {
		return nil, fmt.Errorf("Backtracing from %s: %w", goal,
			ErrUnreachable)
	}
	limit := f.Width * f.Height
	toReturn := make([]image.Point, 0, f.Depth(goal.X, goal.Y))
	current := goal
	for current != f.Start {
		if len(toReturn) >= limit {
			return nil, fmt.Errorf("No path to %s after %d steps: %w",
				f.Start, limit, ErrBrokenField)
		}
		toReturn = append(toReturn, current)
		depth := f.Depth(current.X, current.Y)
		next := current
		for _, v := range neighborOrder {
			n := v.From(current)
			d := f.Depth(n.X, n.Y)
			if (d > 0) && (d < depth) {
				next = n
				break
			}
		}
		if next == current {
			return nil, fmt.Errorf("Dead end at %s (depth %d): %w", current,
				depth, ErrBrokenField)
		}
		current = next
	}
	toReturn = append(toReturn, current)
	return toReturn, nil
}
