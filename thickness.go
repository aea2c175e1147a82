package flatfield

import (
	"image"
	"math"
)

// ThicknessByte maps a calibrated value to a thickness/attenuation
// intensity under a simple exponential attenuation model: -ln(v), scaled by
// 25 and clamped to a byte. Non-positive values, where the log is
// undefined, take a fixed sentinel thickness of 10.0 (byte 250).
func ThicknessByte(v float64) uint8 {
	t := thicknessSentinel
	if v > 0 {
		t = -math.Log(v)
	}
	iv := int(math.Round(t * thicknessScale))
	if iv < 0 {
		iv = 0
	}
	if iv > 255 {
		iv = 255
	}
	return uint8(iv)
}

// ThicknessImage renders the thickness map of g as grayscale. Unlike the
// normalized view, reference cells are not visually distinguished.
func ThicknessImage(g *CalibratedGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	parallelRows(g.Height, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := img.Pix[i*img.Stride : i*img.Stride+g.Width]
			for j := range row {
				row[j] = ThicknessByte(g.Cells[i*g.Width+j].Value)
			}
		}
	})
	return img
}
