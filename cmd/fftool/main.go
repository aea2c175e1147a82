package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fieldview/flatfield"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fail(err)
		}
	case "stats":
		if err := runStats(os.Args[2:]); err != nil {
			fail(err)
		}
	case "gen":
		if err := runGen(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: fftool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  render -in block.int -out normalized_image.bmp [-thickness-out thickness_image.bmp] [-prompt] [-scale-width N]")
	fmt.Fprintln(os.Stderr, "  stats  -in block.int")
	fmt.Fprintln(os.Stderr, "  gen    -out block.int -w 640 -h 480 [-value 3000] [-gradient]")
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	inPath := fs.String("in", "block.int", "input block file")
	outPath := fs.String("out", "normalized_image.bmp", "output BMP for the normalized view")
	thicknessOut := fs.String("thickness-out", "", "output BMP for the thickness view")
	prompt := fs.Bool("prompt", false, "ask on stdin whether to write the thickness view")
	scaleWidth := fs.Int("scale-width", 0, "downscale output views to this width")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := flatfield.ReadBlockFile(*inPath)
	if err != nil {
		return err
	}
	grid, err := flatfield.Calibrate(raw)
	if err != nil {
		return err
	}

	opts := func(o *flatfield.RenderOptions) { o.ScaleWidth = *scaleWidth }
	if err := flatfield.WriteBMP(*outPath, flatfield.RenderNormalizedView(grid, opts)); err != nil {
		return err
	}
	fmt.Printf("Image %q generated successfully.\n", *outPath)

	thickness := *thicknessOut
	if thickness == "" && *prompt && askThickness() {
		thickness = "thickness_image.bmp"
	}
	if thickness == "" {
		return nil
	}
	if err := flatfield.WriteBMP(thickness, flatfield.RenderThicknessView(grid, opts)); err != nil {
		return err
	}
	fmt.Printf("Image %q generated successfully.\n", thickness)
	return nil
}

// askThickness reproduces the legacy operator prompt.
func askThickness() bool {
	fmt.Print("Input 1 to check thickness: ")
	sc := bufio.NewScanner(os.Stdin)
	return sc.Scan() && strings.TrimSpace(sc.Text()) == "1"
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	inPath := fs.String("in", "block.int", "input block file")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := flatfield.ReadBlockFile(*inPath)
	if err != nil {
		return err
	}
	grid, err := flatfield.Calibrate(raw)
	if err != nil {
		return err
	}

	st := flatfield.Summarize(grid)
	fmt.Printf("grid:                %dx%d (%d cells)\n", grid.Width, grid.Height, st.Cells)
	fmt.Printf("calibrated fraction: %.4f\n", st.CalibratedFraction)
	fmt.Printf("mean:                %.6f\n", st.Mean)
	fmt.Printf("stddev:              %.6f\n", st.StdDev)
	fmt.Printf("min/max:             %.6f / %.6f\n", st.Min, st.Max)
	fmt.Printf("p05/median/p95:      %.6f / %.6f / %.6f\n", st.P05, st.Median, st.P95)
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	outPath := fs.String("out", "block.int", "output block file")
	width := fs.Int("w", 0, "grid width")
	height := fs.Int("h", 0, "grid height")
	value := fs.Int("value", 3000, "raw reading")
	gradient := fs.Bool("gradient", false, "add a horizontal gradient of one count per column")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width <= 0 || *height <= 0 {
		return errors.New("missing required -w and -h arguments")
	}

	g := &flatfield.RawGrid{
		Height: *height,
		Width:  *width,
		Pix:    make([]int32, *height**width),
	}
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			v := int32(*value)
			if *gradient {
				v += int32(j)
			}
			g.Pix[i*g.Width+j] = v
		}
	}
	if err := flatfield.WriteBlockFile(*outPath, g); err != nil {
		return err
	}
	fmt.Printf("Block %q generated: %dx%d.\n", *outPath, g.Width, g.Height)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
