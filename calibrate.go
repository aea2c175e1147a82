package flatfield

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyGrid reports a grid with a zero dimension.
	ErrEmptyGrid = errors.New("grid dimensions cannot be zero")
	// ErrInvalidDimensions reports a grid too small to carry its reference
	// strips.
	ErrInvalidDimensions = errors.New("grid too small for reference calibration")
	// ErrDegenerateReference reports a zero detector reference average under
	// DetectorZeroError.
	ErrDegenerateReference = errors.New("degenerate detector reference average")
)

// Calibrate flat-fields a raw frame and returns a new grid of normalized
// cell values with per-cell calibration flags. The input is not modified.
//
// Four ordered stages: background subtraction against the signal threshold,
// beta-thorne calibration against the trailing reference rows, detector
// calibration against the trailing reference columns, and an upper clamp to
// 1.0. Cells inside either reference strip keep their background-subtracted
// value and are flagged Calibrated; all other cells are corrected in
// proportion to the reference averages.
func Calibrate(raw *RawGrid, optFns ...func(*Options)) (*CalibratedGrid, error) {
	opt := Options{
		SignalThreshold: defaultSignalThreshold,
		ReferenceRows:   defaultReferenceRows,
		ReferenceCols:   defaultReferenceCols,
	}
	for _, fn := range optFns {
		fn(&opt)
	}
	if opt.ReferenceRows <= 0 || opt.ReferenceCols <= 0 {
		return nil, fmt.Errorf("reference strip sizes %dx%d: %w", opt.ReferenceRows, opt.ReferenceCols, ErrInvalidDimensions)
	}

	if raw == nil || raw.Height == 0 || raw.Width == 0 {
		return nil, ErrEmptyGrid
	}
	m, n := raw.Height, raw.Width
	if m < opt.ReferenceRows {
		return nil, fmt.Errorf("%d rows, beta-thorne calibration needs at least %d: %w", m, opt.ReferenceRows, ErrInvalidDimensions)
	}
	if n < opt.ReferenceCols {
		return nil, fmt.Errorf("%d columns, detector calibration needs at least %d: %w", n, opt.ReferenceCols, ErrInvalidDimensions)
	}

	g := &CalibratedGrid{Height: m, Width: n, Cells: make([]Cell, m*n)}

	// Stage 1: background subtraction. Readings at or below the threshold
	// floor to zero.
	parallelRows(m, func(lo, hi int) {
		for k := lo * n; k < hi*n; k++ {
			if v := raw.Pix[k]; v > opt.SignalThreshold {
				g.Cells[k].Value = float64(v - opt.SignalThreshold)
			}
		}
	})

	// Stage 2: beta-thorne calibration. One average per column over the
	// trailing reference rows; those rows are flagged calibrated whether or
	// not their average ends up used.
	rowRef := make([]float64, n)
	strip := make([]float64, opt.ReferenceRows)
	for j := 0; j < n; j++ {
		for k, i := 0, m-opt.ReferenceRows; i < m; i, k = i+1, k+1 {
			strip[k] = g.Cells[i*n+j].Value
			g.Cells[i*n+j].Calibrated = true
		}
		rowRef[j] = floats.Sum(strip) / float64(opt.ReferenceRows)
	}
	overall := stat.Mean(rowRef, nil)

	// Only the trailing rows carry flags at this point, so the uncalibrated
	// cells are exactly the leading m-ReferenceRows rows.
	lead := m - opt.ReferenceRows
	parallelRows(lead, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := g.Cells[i*n : (i+1)*n]
			for j := range row {
				if rowRef[j] != 0 {
					row[j].Value *= overall / rowRef[j]
				} else {
					row[j].Value = 0
				}
			}
		}
	})

	// Stage 3: detector calibration. Per-row average over the trailing
	// reference columns, skipping cells calibrated by stage 2 so the
	// beta-thorne rows do not pollute the detector baseline. The divisor is
	// the fixed strip width, not the number of cells actually summed.
	colRef := make([]float64, m)
	for i := 0; i < m; i++ {
		sum := 0.0
		for j := n - opt.ReferenceCols; j < n; j++ {
			c := &g.Cells[i*n+j]
			if !c.Calibrated {
				sum += c.Value
				c.Calibrated = true
			}
		}
		colRef[i] = sum / float64(opt.ReferenceCols)
	}

	if opt.DetectorZero == DetectorZeroError {
		for i := 0; i < lead; i++ {
			if colRef[i] == 0 {
				return nil, fmt.Errorf("row %d: %w", i, ErrDegenerateReference)
			}
		}
	}

	inner := n - opt.ReferenceCols
	parallelRows(lead, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := g.Cells[i*n : i*n+inner]
			if ref := colRef[i]; ref != 0 {
				for j := range row {
					row[j].Value /= ref
				}
			} else {
				for j := range row {
					row[j].Value = 0
				}
			}
		}
	})

	// Stage 4: upper clamp. Reference cells still hold raw background-
	// subtracted magnitudes and rely on this as much as corrected cells do.
	// No lower clamp.
	parallelRows(m, func(lo, hi int) {
		for k := lo * n; k < hi*n; k++ {
			if g.Cells[k].Value > 1.0 {
				g.Cells[k].Value = 1.0
			}
		}
	})

	return g, nil
}
