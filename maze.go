// This defines a library for generating 2D mazes by carving corridors of wall
// into an open grid, solving them, and drawing them into raster images that
// can be saved using the tiff package.
package maze

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/TeamKansas/mazeGenerator/raster"
	log "github.com/sirupsen/logrus"
)

// All mazes returned by this library will support this interface.
type Maze interface {
	RegenerateFromSeed(seed int64) error
	ShowSolution(show bool) error
	ShowHeatmap(show bool) error
	// Draws the maze into a new raster image.
	Render() (*raster.Buffer, error)
	// Returns information about the maze, such as the last random seed and
	// where the entrance and exit are drawn.
	GetInfo() *MazeInfo
}

// The smallest allowed maze width or height, in cells.
const MinDimension = 3

// Returned when a maze's width or height is too small.
var ErrBadDimensions = errors.New("maze dimensions smaller than 3 are " +
	"invalid")

// Returned when the resolution is not positive, or too large for the image
// format.
var ErrBadResolution = errors.New("invalid resolution")

// Holds the settings for generating and drawing a maze.
type Config struct {
	// The size of the maze in cells, not including the outer wall.
	Width  int
	Height int
	// The width and height of each cell in the image, in pixels.
	Resolution int
	// If not positive, a seed is chosen based on the current time.
	Seed int64
	// Fill cells with a color indicating their distance from the start.
	Heatmap bool
	// Highlight the path from the bottom-right cell to the start.
	Solution bool
	// Produce a single-channel image rather than RGB.
	Grayscale bool
	// Overrides DefaultTurnParams if set.
	Turns *TurnParams
}

// Returns a non-nil error if the config can't be used to create a maze. This
// doesn't allocate anything.
func (c *Config) Validate() error {
	if (c.Width < MinDimension) || (c.Height < MinDimension) {
		return fmt.Errorf("Can't create a %dx%d maze: %w", c.Width, c.Height,
			ErrBadDimensions)
	}
	if c.Resolution < 1 {
		return fmt.Errorf("Resolution %d is not positive: %w", c.Resolution,
			ErrBadResolution)
	}
	if (c.Width > raster.MaxDimension/c.Resolution) ||
		(c.Height > raster.MaxDimension/c.Resolution) {
		return fmt.Errorf("A %dx%d maze at resolution %d exceeds the %d pixel "+
			"image limit: %w", c.Width, c.Height, c.Resolution,
			raster.MaxDimension, ErrBadResolution)
	}
	return nil
}

// Describes a maze returned by GetInfo. Points are in the pixel coordinates
// of the image returned by Render.
type MazeInfo struct {
	// A human-readable summary, such as the random seed.
	DebugInfo string
	Seed      int64
	// The point at which the start arrow should be drawn, and the arrow's
	// angle, in degrees counterclockwise from pointing right.
	StartPoint image.Point
	StartAngle float32
	// Same as StartPoint and StartAngle, but for the end of the maze.
	EndPoint image.Point
	EndAngle float32
}

// Satisfies the Maze interface. Create using NewWallMaze.
type WallMaze struct {
	cfg  Config
	grid *WallGrid
	// The seed that was last used to generate the maze.
	randomSeed int64
	stats      GenerateStats
	// The time required for the last generation.
	generationTime float64
	// Only set if a heatmap or solution was requested.
	field *DistanceField
	path  []image.Point
}

// Generates a maze using the given settings. If a solution was requested but
// can't be found, the maze is returned along with an error wrapping
// ErrUnreachable or ErrBrokenField; the maze can still be drawn without the
// solution.
func NewWallMaze(cfg Config) (*WallMaze, error) {
	e := cfg.Validate()
	if e != nil {
		return nil, e
	}
	grid, e := NewWallGrid(cfg.Width+2, cfg.Height+2)
	if e != nil {
		return nil, fmt.Errorf("Error allocating maze grid: %w", e)
	}
	toReturn := &WallMaze{
		cfg:  cfg,
		grid: grid,
	}
	e = toReturn.RegenerateFromSeed(cfg.Seed)
	if e != nil {
		if IsSolveError(e) {
			return toReturn, e
		}
		return nil, fmt.Errorf("Error generating maze: %w", e)
	}
	return toReturn, nil
}

// Generates a maze with one pixel per cell and no heatmap or solution. If
// the given RNG seed is not positive, a new seed will be selected based on
// the current time in nanoseconds.
func NewWallMazeWithSeed(width, height int, seed int64) (*WallMaze, error) {
	return NewWallMaze(Config{
		Width:      width,
		Height:     height,
		Resolution: 1,
		Seed:       seed,
	})
}

// Returns the underlying grid. Modifying it will invalidate any solution.
func (m *WallMaze) Grid() *WallGrid {
	return m.grid
}

// Returns the distance field, or nil if neither a heatmap nor a solution has
// been requested.
func (m *WallMaze) Field() *DistanceField {
	return m.field
}

// Returns the solution path, from the goal back to the start, or nil if it
// hasn't been requested.
func (m *WallMaze) Path() []image.Point {
	return m.path
}

// Returns the statistics from the last generation.
func (m *WallMaze) Stats() GenerateStats {
	return m.stats
}

// Returns the cell at which the solver starts.
func (m *WallMaze) StartCell() image.Point {
	return image.Pt(borderWidth, borderWidth)
}

// Returns the cell at which the solution path begins: the bottom-right
// interior cell.
func (m *WallMaze) GoalCell() image.Point {
	return image.Pt(m.grid.Width-borderWidth-1, m.grid.Height-borderWidth-1)
}

func (m *WallMaze) RegenerateFromSeed(seed int64) error {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	m.randomSeed = seed
	m.field = nil
	m.path = nil
	rng := rand.New(rand.NewSource(seed))
	startTime := time.Now()
	m.stats = Generate(m.grid, rng, m.cfg.Turns)
	m.generationTime = time.Since(startTime).Seconds()
	log.WithFields(log.Fields{
		"seed":      seed,
		"width":     m.cfg.Width,
		"height":    m.cfg.Height,
		"corridors": m.stats.Completed,
		"saturated": m.stats.Saturated,
	}).Debug("Generated maze")
	return m.updateSolution()
}

// Recomputes the distance field and solution path, depending on which of them
// are enabled.
func (m *WallMaze) updateSolution() error {
	m.field = nil
	m.path = nil
	if !m.cfg.Heatmap && !m.cfg.Solution {
		return nil
	}
	m.field = Label(m.grid, m.StartCell())
	log.WithFields(log.Fields{
		"levels":  m.field.Levels,
		"reached": m.field.ReachedCount(),
	}).Debug("Labeled distances")
	if !m.cfg.Solution {
		return nil
	}
	path, e := Backtrace(m.field, m.GoalCell())
	if e != nil {
		return fmt.Errorf("Error finding solution: %w", e)
	}
	m.path = path
	return nil
}

func (m *WallMaze) ShowSolution(show bool) error {
	m.cfg.Solution = show
	return m.updateSolution()
}

func (m *WallMaze) ShowHeatmap(show bool) error {
	m.cfg.Heatmap = show
	return m.updateSolution()
}

func (m *WallMaze) Render() (*raster.Buffer, error) {
	res := m.cfg.Resolution
	mode := raster.Truecolor
	if m.cfg.Grayscale {
		mode = raster.Grayscale
	}
	b, e := raster.New(m.cfg.Width*res, m.cfg.Height*res, mode)
	if e != nil {
		return nil, fmt.Errorf("Error allocating image: %w", e)
	}
	b.SetColor(color.White)
	b.Fill()
	b.SetColor(color.Black)
	DrawWalls(b, m.grid, res)
	if m.cfg.Heatmap && (m.field != nil) {
		DrawHeatmap(b, m.field, res)
	}
	if m.cfg.Solution && (m.path != nil) {
		b.SetRGB(255, 0, 0)
		DrawPath(b, m.path, res)
	}
	return b, nil
}

func (m *WallMaze) GetInfo() *MazeInfo {
	res := m.cfg.Resolution
	mapper := cellMapper{res: res}
	start := mapper.center(m.StartCell().X, m.StartCell().Y)
	end := mapper.center(m.GoalCell().X, m.GoalCell().Y)
	return &MazeInfo{
		DebugInfo: fmt.Sprintf("%dx%d wall maze with random seed %d, %s, "+
			"generated in %.03f seconds", m.cfg.Width, m.cfg.Height,
			m.randomSeed, m.stats, m.generationTime),
		Seed:       m.randomSeed,
		StartPoint: image.Pt(0, start.Y),
		StartAngle: 0,
		EndPoint:   image.Pt(m.cfg.Width*res-1, end.Y),
		EndAngle:   0,
	}
}

// A solid-color frame around another image. Satisfies the Image interface;
// the framed image always starts at (0, 0).
type FramedImage struct {
	pic   image.Image
	inner image.Rectangle
	size  image.Rectangle
	fill  color.Color
}

// Returns the rectangle occupied by the original image.
func (f *FramedImage) Inner() image.Rectangle {
	return f.inner
}

func (f *FramedImage) ColorModel() color.Model {
	return f.pic.ColorModel()
}

func (f *FramedImage) Bounds() image.Rectangle {
	return f.size
}

func (f *FramedImage) At(x, y int) color.Color {
	p := image.Pt(x, y)
	if !p.In(f.inner) {
		return f.fill
	}
	src := p.Sub(f.inner.Min).Add(f.pic.Bounds().Min)
	return f.pic.At(src.X, src.Y)
}

// Returns a new image, consisting of the given image surrounded by a border
// of the given color and width in pixels.
func AddImageBorder(pic image.Image, width int,
	fill color.Color) *FramedImage {
	b := pic.Bounds()
	inner := image.Rect(width, width, width+b.Dx(), width+b.Dy())
	return &FramedImage{
		pic:   pic,
		inner: inner,
		size:  image.Rect(0, 0, b.Dx()+2*width, b.Dy()+2*width),
		fill:  fill,
	}
}
