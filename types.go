package flatfield

// RawGrid stores one detector frame as read from a block file: Height rows
// of Width signed readings, row-major. It is not modified after decode.
type RawGrid struct {
	Height int
	Width  int
	Pix    []int32
}

// At returns the raw reading at row i, column j.
func (g *RawGrid) At(i, j int) int32 {
	return g.Pix[i*g.Width+j]
}

// Cell is one calibrated grid element. Calibrated marks cells whose value
// was taken directly from a reference strip (background-subtracted only)
// rather than corrected by the row/column proportion steps.
type Cell struct {
	Value      float64
	Calibrated bool
}

// CalibratedGrid is the output of Calibrate: same dimensions as the input
// RawGrid, immutable once returned.
type CalibratedGrid struct {
	Height int
	Width  int
	Cells  []Cell
}

// At returns the cell at row i, column j.
func (g *CalibratedGrid) At(i, j int) Cell {
	return g.Cells[i*g.Width+j]
}

// DetectorZeroPolicy selects how Calibrate handles a detector reference
// average of zero, which the division step cannot use.
type DetectorZeroPolicy int

const (
	// DetectorZeroClamp forces affected cells to 0, matching the zero-guard
	// the beta-thorne stage applies to its own reference averages.
	DetectorZeroClamp DetectorZeroPolicy = iota
	// DetectorZeroError aborts calibration with ErrDegenerateReference.
	DetectorZeroError
)

// Options controls Calibrate. Option functions receive it pre-populated
// with the frame-format defaults.
type Options struct {
	SignalThreshold int32              // background floor (default 2048)
	ReferenceRows   int                // trailing beta-thorne rows (default 15)
	ReferenceCols   int                // trailing detector columns (default 50)
	DetectorZero    DetectorZeroPolicy // zero detector-average handling
}

// RenderOptions controls the image views produced from a CalibratedGrid.
type RenderOptions struct {
	// ScaleWidth, when >0 and smaller than the grid width, downscales the
	// rendered view proportionally to this width.
	ScaleWidth int
}
