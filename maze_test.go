package maze

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/TeamKansas/mazeGenerator/raster"
)

var _ Maze = (*WallMaze)(nil)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected error
	}{
		{"minimum", Config{Width: 3, Height: 3, Resolution: 1}, nil},
		{"default", Config{Width: 300, Height: 300, Resolution: 5}, nil},
		{"too small", Config{Width: 2, Height: 2, Resolution: 1},
			ErrBadDimensions},
		{"narrow", Config{Width: 2, Height: 50, Resolution: 1},
			ErrBadDimensions},
		{"no resolution", Config{Width: 5, Height: 5}, ErrBadResolution},
		{"too wide", Config{Width: 20000, Height: 5, Resolution: 4},
			ErrBadResolution},
	}
	for _, tc := range tests {
		e := tc.cfg.Validate()
		if tc.expected == nil {
			if e != nil {
				t.Errorf("%s: unexpected error %s", tc.name, e)
			}
			continue
		}
		if !errors.Is(e, tc.expected) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, e)
		}
	}
	_, e := NewWallMaze(Config{Width: 2, Height: 2, Resolution: 1})
	if !errors.Is(e, ErrBadDimensions) {
		t.Errorf("NewWallMaze accepted a 2x2 maze: %v", e)
	}
}

func TestWallMazeDeterministic(t *testing.T) {
	a, e := NewWallMazeWithSeed(10, 10, 42)
	if e != nil {
		t.Fatalf("Failed generating maze: %s", e)
	}
	b, e := NewWallMazeWithSeed(10, 10, 42)
	if e != nil {
		t.Fatalf("Failed generating maze: %s", e)
	}
	if !a.Grid().Equal(b.Grid()) {
		t.Fatalf("Same seed gave different mazes")
	}
	if (a.Grid().Width != 12) || (a.Grid().Height != 12) {
		t.Errorf("Expected a 12x12 grid, got %dx%d", a.Grid().Width,
			a.Grid().Height)
	}
	if a.GetInfo().Seed != 42 {
		t.Errorf("Info reports seed %d", a.GetInfo().Seed)
	}
	saved := a.Grid().Clone()
	e = a.RegenerateFromSeed(43)
	if e != nil {
		t.Fatalf("Regenerating failed: %s", e)
	}
	e = a.RegenerateFromSeed(42)
	if e != nil {
		t.Fatalf("Regenerating failed: %s", e)
	}
	if !a.Grid().Equal(saved) {
		t.Errorf("Regenerating from the same seed gave a different maze")
	}
}

// With one pixel per cell, every wall cell inside the outer layer becomes a
// single black pixel.
func TestRenderWallsResolutionOne(t *testing.T) {
	m, e := NewWallMazeWithSeed(10, 10, 42)
	if e != nil {
		t.Fatalf("Failed generating maze: %s", e)
	}
	b, e := m.Render()
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	if (b.Width() != 10) || (b.Height() != 10) {
		t.Fatalf("Expected a 10x10 image, got %dx%d", b.Width(), b.Height())
	}
	g := m.Grid()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			black := b.At(x, y) == (color.RGBA{0, 0, 0, 255})
			if black != g.At(x+1, y+1) {
				t.Fatalf("Pixel (%d, %d) black = %v, but cell (%d, %d) "+
					"wall = %v", x, y, black, x+1, y+1, g.At(x+1, y+1))
			}
		}
	}
}

func TestRenderMinimumMaze(t *testing.T) {
	m, e := NewWallMaze(Config{
		Width:      3,
		Height:     3,
		Resolution: 4,
		Seed:       9,
		Heatmap:    true,
		Solution:   true,
		Grayscale:  true,
	})
	if e != nil {
		t.Fatalf("Failed generating 3x3 maze: %s", e)
	}
	if len(m.Path()) != 1 {
		t.Errorf("Expected a single-cell path, got %v", m.Path())
	}
	b, e := m.Render()
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	if (b.Width() != 12) || (b.Height() != 12) || (b.Channels() != 1) {
		t.Fatalf("Unexpected image: %dx%d, %d channels", b.Width(),
			b.Height(), b.Channels())
	}
}

// Builds a maze around a hand-made grid, so the solution is known.
func openTestMaze(t *testing.T, cfg Config) *WallMaze {
	m := &WallMaze{
		cfg:  cfg,
		grid: openTestGrid(t),
	}
	e := m.updateSolution()
	if e != nil {
		t.Fatalf("Failed solving the open maze: %s", e)
	}
	return m
}

func TestRenderSolutionAndHeatmap(t *testing.T) {
	m := openTestMaze(t, Config{
		Width:      5,
		Height:     5,
		Resolution: 2,
		Heatmap:    true,
		Solution:   true,
	})
	b, e := m.Render()
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	red := color.RGBA{255, 0, 0, 255}
	for _, p := range m.Path() {
		// Cell (x, y) starts at pixel ((x - 1) * 2, (y - 1) * 2).
		px, py := (p.X-1)*2, (p.Y-1)*2
		if b.At(px, py) != red {
			t.Errorf("Path cell %s drawn as %v", p, b.At(px, py))
		}
	}
	// (4, 2) isn't on the path, so it shows the heatmap color for depth 3.
	_, green, blue := heatmapColor(3, 5)
	expected := color.RGBA{0, green, blue, 255}
	if b.At(6, 2) != expected {
		t.Errorf("Heatmap cell drawn as %v, expected %v", b.At(6, 2),
			expected)
	}
	// Heatmap only: no red anywhere.
	e = m.ShowSolution(false)
	if e != nil {
		t.Fatalf("Disabling the solution failed: %s", e)
	}
	b, _ = m.Render()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.At(x, y) == red {
				t.Fatalf("Found a path pixel at (%d, %d) with the solution "+
					"disabled", x, y)
			}
		}
	}
}

func TestHeatmapColor(t *testing.T) {
	_, g, blue := heatmapColor(1, 0)
	if (g != 0) || (blue != 255) {
		t.Errorf("Single-level heatmap should be blue, got (0, %d, %d)", g,
			blue)
	}
	_, g, blue = heatmapColor(1, 254)
	if (g != 254) || (blue != 1) {
		t.Errorf("Start cell should be nearly green, got (0, %d, %d)", g, blue)
	}
}

func TestGetInfo(t *testing.T) {
	m := openTestMaze(t, Config{Width: 5, Height: 5, Resolution: 3})
	info := m.GetInfo()
	if info.StartPoint != image.Pt(0, 4) {
		t.Errorf("Start point %s, expected (0,4)", info.StartPoint)
	}
	if info.EndPoint != image.Pt(14, 10) {
		t.Errorf("End point %s, expected (14,10)", info.EndPoint)
	}
}

func TestAddImageBorder(t *testing.T) {
	b, _ := raster.New(3, 2, raster.Truecolor)
	bordered := AddImageBorder(b, 2, color.White)
	if bordered.Bounds() != image.Rect(0, 0, 7, 6) {
		t.Fatalf("Bordered bounds %s", bordered.Bounds())
	}
	if bordered.Inner() != image.Rect(2, 2, 5, 4) {
		t.Errorf("Inner rectangle %s", bordered.Inner())
	}
	if bordered.At(0, 0) != color.White {
		t.Errorf("Border pixel isn't white")
	}
	if bordered.At(2, 2) != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Image pixel wasn't copied: %v", bordered.At(2, 2))
	}
	if bordered.At(5, 3) != color.White {
		t.Errorf("Pixel right of the image isn't part of the border")
	}
}
