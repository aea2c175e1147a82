package flatfield

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// EncodeBMP serializes img as an uncompressed BMP: 24-bit for opaque RGB
// views, 8-bit grayscale for thickness maps.
func EncodeBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

// WriteBMP writes img to path as BMP.
func WriteBMP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := EncodeBMP(bw, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
