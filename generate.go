package maze

import (
	"fmt"
	"image"
)

// The source of randomness used during generation. *math/rand.Rand satisfies
// this interface.
type RNG interface {
	Intn(n int) int
}

// Controls how often corridors turn while they are being carved. After each
// carving step, the corridor turns with probability 1/avg, where avg starts
// at Initial, drops by AttemptCost for every rotation needed to find a legal
// step, and never goes below Floor. avg is multiplied by IterationScale after
// each corridor and carries over to the next one.
type TurnParams struct {
	Initial        int
	AttemptCost    float64
	Floor          int
	IterationScale float64
}

// The turn parameters used by NewWallMazeWithSeed.
var DefaultTurnParams = TurnParams{
	Initial:        4,
	AttemptCost:    1.5,
	Floor:          7,
	IterationScale: 0.9,
}

// Information about a finished Generate call.
type GenerateStats struct {
	// The number of corridors the generator planned to carve.
	Iterations int
	// The number of corridors actually started.
	Completed int
	// True if generation stopped early because no legal starting cell
	// remained.
	Saturated bool
}

func (s GenerateStats) String() string {
	if s.Saturated {
		return fmt.Sprintf("%d/%d corridors (saturated)", s.Completed,
			s.Iterations)
	}
	return fmt.Sprintf("%d/%d corridors", s.Completed, s.Iterations)
}

// Returns true if stepping from pos in direction dir would be illegal:
// either the destination leaves the inner ring of the grid, or one of the
// cells ahead of and beside the destination is a wall.
func (g *WallGrid) blocked(pos image.Point, dir Vector) bool {
	p := dir.From(pos)
	if (p.X <= 0) || (p.Y <= 0) || (p.X >= g.Width-1) ||
		(p.Y >= g.Height-1) {
		return true
	}
	ahead := dir.From(p)
	return g.At(ahead.X, ahead.Y) ||
		g.At(p.X-dir.DY, p.Y+dir.DX) ||
		g.At(p.X+dir.DY, p.Y-dir.DX) ||
		g.At(ahead.X+dir.DY, ahead.Y+dir.DX) ||
		g.At(ahead.X-dir.DY, ahead.Y-dir.DX)
}

// Rotates *dir in the given sense until a legal step from pos is found,
// trying at most all four directions. Returns the number of directions tried
// (1 through 4), or 0 if no legal step exists or the destination is already a
// wall.
func (g *WallGrid) legalTurn(pos image.Point, dir *Vector, s Sense) int {
	attempts := 0
	for (attempts < 4) && g.blocked(pos, *dir) {
		*dir = dir.Rotate(s)
		attempts++
	}
	if attempts == 4 {
		return 0
	}
	p := dir.From(pos)
	if g.At(p.X, p.Y) {
		return 0
	}
	return attempts + 1
}

// Returns a randomly chosen rotation sense.
func randomSense(rng RNG) Sense {
	return Sense(2*rng.Intn(2) - 1)
}

// Returns a random axis-aligned unit vector.
func randomDirection(rng RNG) Vector {
	dx := rng.Intn(3) - 1
	if dx != 0 {
		return Vector{DX: dx}
	}
	return Vector{DY: 2*rng.Intn(2) - 1}
}

// Looks for a cell from which a legal step exists, starting at start and
// scanning every interior cell, column by column. May rotate *dir. Returns
// false if no interior cell has a legal step.
func (g *WallGrid) seek(start image.Point, dir *Vector) (image.Point, bool) {
	w := g.Width - 2*borderWidth
	h := g.Height - 2*borderWidth
	sx := start.X - borderWidth
	sy := start.Y - borderWidth
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			pos := image.Pt((sx+i)%w+borderWidth, (sy+j)%h+borderWidth)
			if g.legalTurn(pos, dir, Clockwise) != 0 {
				return pos, true
			}
		}
	}
	return start, false
}

// Marks a cell as a wall while carving. The carve rules never target the
// border, so doing so is a bug.
func (g *WallGrid) carve(p image.Point) {
	if !g.Interior(p.X, p.Y) {
		panic(fmt.Sprintf("Carving step reached border cell (%d, %d)", p.X,
			p.Y))
	}
	g.Set(p.X, p.Y, true)
}

// Carves a single corridor, starting from pos and moving in the direction
// dir. Returns the updated turn denominator.
func (g *WallGrid) carveCorridor(pos image.Point, dir Vector, avg int,
	params *TurnParams, rng RNG) int {
	for {
		attempts := g.legalTurn(pos, &dir, randomSense(rng))
		if attempts == 0 {
			return avg
		}
		avg = int(float64(avg) - float64(attempts)*params.AttemptCost)
		if avg < params.Floor {
			avg = params.Floor
		}
		pos = dir.From(pos)
		g.carve(pos)
		if rng.Intn(avg) == 0 {
			dir = dir.Rotate(randomSense(rng))
		}
	}
}

// Builds a maze in the grid, which must have been created by NewWallGrid.
// The interior is cleared first, then corridors of wall are repeatedly traced
// starting from existing walls. The result is deterministic for a given grid
// size and sequence of random numbers.
func Generate(g *WallGrid, rng RNG, params *TurnParams) GenerateStats {
	if params == nil {
		params = &DefaultTurnParams
	}
	if params.Floor < 1 {
		panic(fmt.Sprintf("Invalid turn probability floor: %d", params.Floor))
	}
	g.Reset()
	stats := GenerateStats{
		Iterations: g.Width * g.Height / 25,
	}
	w := g.Width - 2*borderWidth
	h := g.Height - 2*borderWidth
	avg := params.Initial
	for i := 0; i < stats.Iterations; i++ {
		dir := randomDirection(rng)
		start := image.Pt(rng.Intn(w)+borderWidth, rng.Intn(h)+borderWidth)
		pos, ok := g.seek(start, &dir)
		if !ok {
			stats.Saturated = true
			break
		}
		// Find the nearest wall in the chosen direction, then turn around and
		// extend it.
		for !g.At(pos.X, pos.Y) {
			pos = dir.From(pos)
		}
		avg = g.carveCorridor(pos, dir.Reverse(), avg, params, rng)
		avg = int(float64(avg) * params.IterationScale)
		stats.Completed++
	}
	return stats
}
