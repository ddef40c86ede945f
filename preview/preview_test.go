package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	maze "github.com/TeamKansas/mazeGenerator"
)

func renderTestMaze(t *testing.T) (*maze.WallMaze, image.Image) {
	m, e := maze.NewWallMaze(maze.Config{
		Width:      12,
		Height:     8,
		Resolution: 4,
		Seed:       5,
	})
	if e != nil {
		t.Fatalf("Failed generating maze: %s", e)
	}
	pic, e := m.Render()
	if e != nil {
		t.Fatalf("Failed rendering maze: %s", e)
	}
	return m, pic
}

func sameRGB(a, b color.Color) bool {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return (r1 == r2) && (g1 == g2) && (b1 == b2)
}

func TestArrowDirections(t *testing.T) {
	tests := []struct {
		angle    float32
		expected int
	}{
		{0, 2},
		{90, 1},
		{180, 0},
		{270, 3},
		{359, 2},
	}
	for _, tc := range tests {
		if angleToArrowDir(tc.angle) != tc.expected {
			t.Errorf("Angle %f gave direction %d, expected %d", tc.angle,
				angleToArrowDir(tc.angle), tc.expected)
		}
	}
	pt := image.Pt(50, 50)
	if getArrowTopLeft(pt, 0, false) != image.Pt(33, 42) {
		t.Errorf("Bad position for an arrow pointing right at %s", pt)
	}
	if getArrowTopLeft(pt, 0, true) != image.Pt(51, 42) {
		t.Errorf("Bad position for an arrow pointing right away from %s", pt)
	}
}

func TestRenderBorder(t *testing.T) {
	m, pic := renderTestMaze(t)
	opts := Options{Border: 20}
	decorated, e := Render(pic, m.GetInfo(), opts)
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	expected := image.Rect(0, 0, 48+40, 32+40)
	if decorated.Bounds() != expected {
		t.Fatalf("Got bounds %s, expected %s", decorated.Bounds(), expected)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 48; x++ {
			if !sameRGB(decorated.At(x+20, y+20), pic.At(x, y)) {
				t.Fatalf("Maze pixel (%d, %d) wasn't copied", x, y)
			}
		}
	}
	if !sameRGB(decorated.At(0, 0), color.White) {
		t.Errorf("Border isn't white")
	}

	// Arrows only ever land in the border.
	opts.Arrows = true
	withArrows, e := Render(pic, m.GetInfo(), opts)
	if e != nil {
		t.Fatalf("Render with arrows failed: %s", e)
	}
	changed := 0
	bounds := withArrows.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if sameRGB(withArrows.At(x, y), decorated.At(x, y)) {
				continue
			}
			changed++
			if image.Pt(x, y).In(image.Rect(20, 20, 68, 52)) {
				t.Fatalf("Arrow covers maze pixel (%d, %d)", x, y)
			}
		}
	}
	if changed == 0 {
		t.Errorf("Enabling arrows didn't change the image")
	}
}

func TestRenderCaption(t *testing.T) {
	m, pic := renderTestMaze(t)
	decorated, e := Render(pic, m.GetInfo(), Options{
		Border:  2,
		Arrows:  true,
		Caption: "12x8 maze, seed 5",
	})
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	expected := image.Rect(0, 0, 52, 36+captionHeight)
	if decorated.Bounds() != expected {
		t.Fatalf("Got bounds %s, expected %s", decorated.Bounds(), expected)
	}
	_, e = Render(pic, m.GetInfo(), Options{Border: -1})
	if e == nil {
		t.Errorf("Expected an error for a negative border")
	}
}

func TestWritePNG(t *testing.T) {
	m, pic := renderTestMaze(t)
	decorated, e := Render(pic, m.GetInfo(), DefaultOptions)
	if e != nil {
		t.Fatalf("Render failed: %s", e)
	}
	name := filepath.Join(t.TempDir(), "maze.png")
	e = WritePNG(name, decorated)
	if e != nil {
		t.Fatalf("WritePNG failed: %s", e)
	}
	f, e := os.Open(name)
	if e != nil {
		t.Fatalf("Failed opening %s: %s", name, e)
	}
	defer f.Close()
	loaded, e := png.Decode(f)
	if e != nil {
		t.Fatalf("Failed decoding %s: %s", name, e)
	}
	if loaded.Bounds() != decorated.Bounds() {
		t.Errorf("Loaded bounds %s, expected %s", loaded.Bounds(),
			decorated.Bounds())
	}
}
