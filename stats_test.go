package flatfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeConstantFrame(t *testing.T) {
	t.Parallel()

	grid, err := Calibrate(constGrid(20, 60, 3000))
	require.NoError(t, err)

	st := Summarize(grid)
	assert.Equal(t, 1200, st.Cells)
	// Reference strips cover all but the leading 5x10 corner.
	assert.InDelta(t, 1150.0/1200.0, st.CalibratedFraction, 1e-12)
	assert.Equal(t, 1.0, st.Mean)
	assert.Zero(t, st.StdDev)
	assert.Equal(t, 1.0, st.Min)
	assert.Equal(t, 1.0, st.Max)
	assert.Equal(t, 1.0, st.Median)
	assert.Equal(t, 1.0, st.P05)
	assert.Equal(t, 1.0, st.P95)
}

func TestSummarizeFullyCalibratedGrid(t *testing.T) {
	t.Parallel()

	// 15 rows means every row is a reference row; no image-bearing cells
	// remain.
	grid, err := Calibrate(constGrid(15, 60, 3000))
	require.NoError(t, err)

	st := Summarize(grid)
	assert.Equal(t, 900, st.Cells)
	assert.Equal(t, 1.0, st.CalibratedFraction)
	assert.Zero(t, st.Mean)
	assert.Zero(t, st.Max)
}

func TestSummarizeSpread(t *testing.T) {
	t.Parallel()

	g := &CalibratedGrid{Height: 1, Width: 5, Cells: []Cell{
		{Value: 0.2}, {Value: 0.4}, {Value: 0.6}, {Value: 0.8}, {Value: 1.0, Calibrated: true},
	}}

	st := Summarize(g)
	assert.Equal(t, 5, st.Cells)
	assert.InDelta(t, 0.2, st.CalibratedFraction, 1e-12)
	assert.InDelta(t, 0.5, st.Mean, 1e-12)
	assert.Greater(t, st.StdDev, 0.0)
	assert.Equal(t, 0.2, st.Min)
	assert.Equal(t, 0.8, st.Max)
	assert.InDelta(t, 0.4, st.Median, 1e-12)
}
