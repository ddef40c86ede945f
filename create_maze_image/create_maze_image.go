// This defines a basic executable for generating an image of a maze.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	maze "github.com/TeamKansas/mazeGenerator"
	"github.com/TeamKansas/mazeGenerator/preview"
	"github.com/TeamKansas/mazeGenerator/tiff"
	log "github.com/sirupsen/logrus"
)

const helpText = `Random Maze generator: This program generates random maze
puzzles and draws them into a .tiff file. The user can specify the height,
width, and resolution of the maze. The user can also choose to include a step
count heatmap or a solution in the image. The program prints the randomizer
seed used after completion.

options:
`

// Holds everything parsed from the command line.
type options struct {
	cfg     maze.Config
	outName string
	pngName string
	border  int
	verify  bool
	verbose bool
}

// Parses the command-line arguments. Returns flag.ErrHelp if -help was
// given.
func parseArgs(args []string, output io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("create_maze_image", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, helpText)
		fs.PrintDefaults()
	}
	fs.IntVar(&o.cfg.Width, "w", 300,
		"The width of the maze, in wall segments.")
	fs.IntVar(&o.cfg.Height, "h", 300,
		"The height of the maze, in wall segments.")
	fs.IntVar(&o.cfg.Resolution, "r", 5,
		"The effective pixel width of a floor section.")
	fs.Int64Var(&o.cfg.Seed, "S", 0,
		"If positive, specifies the random seed to use. Otherwise a seed "+
			"is derived from the current time.")
	fs.StringVar(&o.outName, "n", "maze.tiff",
		"The name of the .tiff file to which the maze will be saved.")
	fs.BoolVar(&o.cfg.Heatmap, "heatmap", false,
		"Color floor tiles based on the number of steps to get to that tile "+
			"from the top left corner. Green is lowest, blue is highest.")
	fs.BoolVar(&o.cfg.Solution, "solution", false,
		"Trace the solution to the maze in red.")
	fs.BoolVar(&o.cfg.Grayscale, "grayscale", false,
		"Write a single-channel grayscale image.")
	fs.StringVar(&o.pngName, "png", "",
		"If set, also save a decorated .png preview to this file.")
	fs.IntVar(&o.border, "border", preview.DefaultOptions.Border,
		"The width of the border around the .png preview, in pixels.")
	fs.BoolVar(&o.verify, "verify", false,
		"Read the .tiff file back after writing it, and check its contents.")
	fs.BoolVar(&o.verbose, "v", false, "Enable debug logging.")
	e := fs.Parse(args)
	if e != nil {
		return nil, e
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return nil, fmt.Errorf("Invalid argument usage: '%s'", fs.Arg(0))
	}
	return &o, nil
}

// Writes the optional png preview of the rendered maze.
func writePreview(pic image.Image, m *maze.WallMaze, o *options) error {
	opts := preview.DefaultOptions
	opts.Border = o.border
	opts.Caption = fmt.Sprintf("%dx%d maze, seed %d", o.cfg.Width,
		o.cfg.Height, m.GetInfo().Seed)
	decorated, e := preview.Render(pic, m.GetInfo(), opts)
	if e != nil {
		return e
	}
	return preview.WritePNG(o.pngName, decorated)
}

func run(args []string, stdout io.Writer) int {
	o, e := parseArgs(args, stdout)
	if e != nil {
		if errors.Is(e, flag.ErrHelp) {
			return 0
		}
		log.Errorf("%s", e)
		return 1
	}
	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}
	e = o.cfg.Validate()
	if e != nil {
		log.Errorf("%s", e)
		return 1
	}
	if o.cfg.Seed <= 0 {
		o.cfg.Seed = time.Now().UnixNano()
	}
	m, e := maze.NewWallMaze(o.cfg)
	if e != nil {
		if !maze.IsSolveError(e) {
			log.Errorf("Failed generating maze: %s", e)
			return 1
		}
		log.Warnf("%s; the image won't include the solution", e)
	}
	log.Infof("Generated %s OK.", m.GetInfo().DebugInfo)
	pic, e := m.Render()
	if e != nil {
		log.Errorf("Failed drawing maze: %s", e)
		return 1
	}
	e = tiff.WriteFile(o.outName, pic)
	if e != nil {
		log.Errorf("%s", e)
		return 1
	}
	log.Infof("Image %s written OK.", o.outName)
	if o.verify {
		e = tiff.Verify(o.outName, pic)
		if e != nil {
			log.Errorf("Verification failed: %s", e)
			return 1
		}
		log.Debugf("Verified %s", o.outName)
	}
	if o.pngName != "" {
		e = writePreview(pic, m, o)
		if e != nil {
			log.Errorf("Failed writing preview: %s", e)
			return 1
		}
		log.Infof("Preview %s written OK.", o.pngName)
	}
	fmt.Fprintf(stdout, "%d\n", o.cfg.Seed)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
