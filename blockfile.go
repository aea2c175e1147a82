package flatfield

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// blockReservedWords is the number of 32-bit header words between the
// dimensions and the pixel data. Their content is acquisition metadata the
// pipeline does not interpret.
const blockReservedWords = 14

// maxBlockCells caps the grid allocation so a corrupt header cannot demand
// an absurd amount of memory.
const maxBlockCells = 1 << 28

// DecodeBlock parses a block-format frame: little-endian u32 width, u32
// height, 14 reserved u32 words, then height*width u32 readings in
// row-major order, each reinterpreted as a signed 32-bit value.
func DecodeBlock(r io.Reader) (*RawGrid, error) {
	width, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("read block width: %w", err)
	}
	height, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("read block height: %w", err)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("block declares %dx%d grid: %w", width, height, ErrEmptyGrid)
	}
	if uint64(width)*uint64(height) > maxBlockCells {
		return nil, fmt.Errorf("block declares %dx%d grid: too large", width, height)
	}

	var reserved [blockReservedWords * 4]byte
	if _, err := io.ReadFull(r, reserved[:]); err != nil {
		return nil, fmt.Errorf("skip reserved block header: %w", err)
	}

	g := &RawGrid{
		Height: int(height),
		Width:  int(width),
		Pix:    make([]int32, int(height)*int(width)),
	}
	row := make([]byte, int(width)*4)
	for i := 0; i < g.Height; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("read block row %d: %w", i, err)
		}
		out := g.Pix[i*g.Width : (i+1)*g.Width]
		for j := range out {
			out[j] = int32(binary.LittleEndian.Uint32(row[j*4:]))
		}
	}
	return g, nil
}

// ReadBlockFile decodes a block-format frame from a file.
func ReadBlockFile(path string) (*RawGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block file: %w", err)
	}
	defer f.Close()

	g, err := DecodeBlock(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

// EncodeBlock writes g in block format with zeroed reserved header words.
func EncodeBlock(w io.Writer, g *RawGrid) error {
	if g.Height <= 0 || g.Width <= 0 {
		return ErrEmptyGrid
	}
	if len(g.Pix) != g.Height*g.Width {
		return fmt.Errorf("grid backing has %d readings, want %d", len(g.Pix), g.Height*g.Width)
	}

	var hdr [(2 + blockReservedWords) * 4]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(g.Width))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(g.Height))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write block header: %w", err)
	}

	row := make([]byte, g.Width*4)
	for i := 0; i < g.Height; i++ {
		in := g.Pix[i*g.Width : (i+1)*g.Width]
		for j, v := range in {
			binary.LittleEndian.PutUint32(row[j*4:], uint32(v))
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("write block row %d: %w", i, err)
		}
	}
	return nil
}

// WriteBlockFile encodes g in block format to a file.
func WriteBlockFile(path string, g *RawGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create block file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := EncodeBlock(bw, g); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush block file: %w", err)
	}
	return f.Close()
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
