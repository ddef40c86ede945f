// This package produces a decorated PNG rendering of a maze, with a border,
// arrows marking the entrance and exit, and an optional caption. It's meant
// for viewing; the TIFF output of the tiff package is the maze itself.
package preview

import (
	"fmt"
	"image"
	"image/color"

	maze "github.com/TeamKansas/mazeGenerator"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/yalue/image_utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const arrowLength = 16

// The height of the strip below the maze holding the caption, in pixels.
const captionHeight = 20

// Controls how Render decorates the maze.
type Options struct {
	// The width of the white border around the maze. Arrows are only drawn
	// if the border is wider than arrowLength.
	Border int
	Arrows bool
	// If non-empty, this text is drawn below the maze.
	Caption string
}

// The default options used by the create_maze_image command.
var DefaultOptions = Options{
	Border: 20,
	Arrows: true,
}

// Returns 0 = left, 1 = up, 2 = right, and 3 = down. The given angle must be
// between 0 and 360, if it isn't this will simply return 2.
func angleToArrowDir(angle float32) int {
	if (angle > 45) && (angle <= 135) {
		return 1
	} else if (angle > 135) && (angle <= 225) {
		return 0
	} else if (angle > 225) && (angle < 315) {
		return 3
	}
	return 2
}

func getArrowForAngle(angle float32, arrowColor color.Color) image.Image {
	switch angleToArrowDir(angle) {
	case 0:
		return image_utils.LeftArrow(arrowColor)
	case 1:
		return image_utils.UpArrow(arrowColor)
	case 3:
		return image_utils.DownArrow(arrowColor)
	}
	return image_utils.RightArrow(arrowColor)
}

// Returns an arrow pointing in the direction of the given angle, rounded to
// the nearest multiple of 90 degrees, with a white center.
func getOutlinedArrow(angle float32, arrowColor color.Color) (image.Image,
	error) {
	outerArrow := image_utils.ResizeImage(getArrowForAngle(angle, arrowColor),
		arrowLength, arrowLength)
	innerArrow := image_utils.ResizeImage(getArrowForAngle(angle, color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	e := toReturn.AddImage(outerArrow, image.Pt(0, 0))
	if e != nil {
		return nil, e
	}
	e = toReturn.AddImage(innerArrow, image.Pt(arrowLength/4, arrowLength/4))
	if e != nil {
		return nil, e
	}
	return image_utils.ToRGBA(toReturn), nil
}

// If the tip of the arrow is supposed to be at the given pt (or the tail of
// the arrow, if "away" is true), this returns the top-left where the square
// image returned by getOutlinedArrow should be drawn.
func getArrowTopLeft(pt image.Point, angle float32, away bool) image.Point {
	halfLength := arrowLength / 2
	switch angleToArrowDir(angle) {
	case 0:
		// Pointing left
		if away {
			return image.Pt(pt.X-arrowLength-1, pt.Y-halfLength)
		}
		return image.Pt(pt.X+1, pt.Y-halfLength)
	case 1:
		// Pointing up
		if away {
			return image.Pt(pt.X-halfLength, pt.Y-arrowLength-1)
		}
		return image.Pt(pt.X-halfLength, pt.Y+1)
	case 3:
		// Pointing down
		if away {
			return image.Pt(pt.X-halfLength, pt.Y+1)
		}
		return image.Pt(pt.X-halfLength, pt.Y-arrowLength-1)
	}
	// Pointing right
	if away {
		return image.Pt(pt.X+1, pt.Y-halfLength)
	}
	return image.Pt(pt.X-arrowLength-1, pt.Y-halfLength)
}

// A decoration to be composited on top of the maze.
type placedImage struct {
	pic image.Image
	pos image.Point
}

// Returns the start and end arrows, positioned for a maze drawn at offset.
func arrows(info *maze.MazeInfo, offset image.Point) ([]placedImage, error) {
	greenColor := color.RGBA{40, 180, 70, 255}
	blueColor := color.RGBA{100, 120, 255, 255}
	startArrow, e := getOutlinedArrow(info.StartAngle, greenColor)
	if e != nil {
		return nil, fmt.Errorf("Error creating start arrow: %w", e)
	}
	endArrow, e := getOutlinedArrow(info.EndAngle, blueColor)
	if e != nil {
		return nil, fmt.Errorf("Error creating end arrow: %w", e)
	}
	return []placedImage{
		{
			pic: startArrow,
			pos: getArrowTopLeft(info.StartPoint.Add(offset),
				info.StartAngle, false),
		},
		{
			pic: endArrow,
			pos: getArrowTopLeft(info.EndPoint.Add(offset), info.EndAngle,
				true),
		},
	}, nil
}

// Loads the font used for captions.
func captionFace() (font.Face, error) {
	ttfFont, e := truetype.Parse(gomono.TTF)
	if e != nil {
		return nil, fmt.Errorf("Failed parsing font: %w", e)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Draws the caption in a white strip below pic.
func addCaption(pic image.Image, caption string) (image.Image, error) {
	bounds := pic.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy()+captionHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(pic, 0, 0)
	face, e := captionFace()
	if e != nil {
		return nil, e
	}
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(caption, float64(bounds.Dx())/2,
		float64(bounds.Dy())+captionHeight/2, 0.5, 0.5)
	return dc.Image(), nil
}

// Returns a decorated copy of the rendered maze pic. info must come from the
// same maze, and gives the positions of the arrows.
func Render(pic image.Image, info *maze.MazeInfo, opts Options) (image.Image,
	error) {
	if opts.Border < 0 {
		return nil, fmt.Errorf("Invalid border width: %d", opts.Border)
	}
	bordered := maze.AddImageBorder(pic, opts.Border, color.White)
	decorated := image_utils.NewCompositeImage()
	e := decorated.AddImage(image_utils.ToRGBA(bordered), image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	if opts.Arrows && (opts.Border > arrowLength) {
		decorations, e := arrows(info, bordered.Inner().Min)
		if e != nil {
			return nil, e
		}
		for _, d := range decorations {
			e = decorated.AddImage(d.pic, d.pos)
			if e != nil {
				return nil, fmt.Errorf("Error adding arrow: %w", e)
			}
		}
	}
	var toReturn image.Image = image_utils.ToRGBA(decorated)
	if opts.Caption != "" {
		toReturn, e = addCaption(toReturn, opts.Caption)
		if e != nil {
			return nil, fmt.Errorf("Error adding caption: %w", e)
		}
	}
	return toReturn, nil
}

// Saves the image to the named file in PNG format.
func WritePNG(name string, pic image.Image) error {
	e := gg.SavePNG(name, pic)
	if e != nil {
		return fmt.Errorf("Error writing %s: %w", name, e)
	}
	return nil
}
