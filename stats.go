package flatfield

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GridStats summarizes the image-bearing (non-reference) cells of a
// calibrated grid.
type GridStats struct {
	Cells              int     // total cells, reference strips included
	CalibratedFraction float64 // share of cells inside the reference strips
	Mean               float64
	StdDev             float64
	Min                float64
	Max                float64
	Median             float64
	P05                float64
	P95                float64
}

// Summarize computes distribution statistics over the non-reference cells
// of g. With no such cells (a grid fully covered by its reference strips)
// only Cells and CalibratedFraction are set.
func Summarize(g *CalibratedGrid) GridStats {
	vals := make([]float64, 0, len(g.Cells))
	calibrated := 0
	for _, c := range g.Cells {
		if c.Calibrated {
			calibrated++
			continue
		}
		vals = append(vals, c.Value)
	}

	st := GridStats{
		Cells:              len(g.Cells),
		CalibratedFraction: float64(calibrated) / float64(len(g.Cells)),
	}
	if len(vals) == 0 {
		return st
	}

	sort.Float64s(vals)
	st.Min = vals[0]
	st.Max = vals[len(vals)-1]
	st.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		st.StdDev = stat.StdDev(vals, nil)
	}
	st.Median = stat.Quantile(0.5, stat.Empirical, vals, nil)
	st.P05 = stat.Quantile(0.05, stat.Empirical, vals, nil)
	st.P95 = stat.Quantile(0.95, stat.Empirical, vals, nil)
	return st
}
