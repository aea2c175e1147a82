package flatfield

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// RenderNormalized maps a calibrated grid to its normalized view: reference
// cells are painted full red, every other cell a gray level of
// round(value*255). Values entering this step are at most 1.0, guaranteed
// by the calibration clamp stage.
func RenderNormalized(g *CalibratedGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	parallelRows(g.Height, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < g.Width; j++ {
				c := g.Cells[i*g.Width+j]
				off := img.PixOffset(j, i)
				if c.Calibrated {
					img.Pix[off] = 0xff
				} else {
					v := uint8(math.Round(c.Value * 255))
					img.Pix[off] = v
					img.Pix[off+1] = v
					img.Pix[off+2] = v
				}
				img.Pix[off+3] = 0xff
			}
		}
	})
	return img
}

// RenderNormalizedView renders the normalized view with options applied.
func RenderNormalizedView(g *CalibratedGrid, optFns ...func(*RenderOptions)) image.Image {
	return scaleView(RenderNormalized(g), renderOptions(optFns))
}

// RenderThicknessView renders the thickness map with options applied.
func RenderThicknessView(g *CalibratedGrid, optFns ...func(*RenderOptions)) image.Image {
	return scaleView(ThicknessImage(g), renderOptions(optFns))
}

func renderOptions(optFns []func(*RenderOptions)) *RenderOptions {
	opt := &RenderOptions{}
	for _, fn := range optFns {
		fn(opt)
	}
	return opt
}

func scaleView(img image.Image, opt *RenderOptions) image.Image {
	if opt.ScaleWidth <= 0 || opt.ScaleWidth >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(opt.ScaleWidth), 0, img, resize.Lanczos3)
}
