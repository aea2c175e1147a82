package flatfield_test

import (
	"path/filepath"

	"github.com/fieldview/flatfield"
)

func ExampleCalibrate() {
	raw, err := flatfield.ReadBlockFile(filepath.FromSlash("testdata/block.int"))
	if err != nil {
		return
	}
	grid, err := flatfield.Calibrate(raw)
	if err != nil {
		return
	}
	_ = flatfield.WriteBMP("normalized_image.bmp", flatfield.RenderNormalizedView(grid))
	_ = flatfield.WriteBMP("thickness_image.bmp", flatfield.RenderThicknessView(grid))
}

func ExampleSummarize() {
	raw, err := flatfield.ReadBlockFile(filepath.FromSlash("testdata/block.int"))
	if err != nil {
		return
	}
	grid, err := flatfield.Calibrate(raw)
	if err != nil {
		return
	}
	_ = flatfield.Summarize(grid)
}
