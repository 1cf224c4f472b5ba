package raster

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// blobHeader is the fixed prefix of the binary form of a grid.
type blobHeader struct {
	Magic  uint16
	Height uint32
	Width  uint32
}

const blobHeaderSize = 10

// MarshalBinary implements encoding.BinaryMarshaler. The result is the tag,
// height and width in little-endian order followed by the samples.
func (g *Grid) MarshalBinary() ([]byte, error) {
	if !validDimension(g.Width) || !validDimension(g.Height) || len(g.Pix) != g.Width*g.Height {
		return nil, fmt.Errorf("%w: invalid grid", ErrBadDimensions)
	}

	b := new(bytes.Buffer)
	b.Grow(blobHeaderSize + len(g.Pix))

	h := blobHeader{
		Magic:  uint16(g.Magic),
		Height: uint32(g.Height),
		Width:  uint32(g.Width),
	}
	if err := binary.Write(b, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if _, err := b.Write(g.Pix); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (g *Grid) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var h blobHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("%w: %w", ErrBadDimensions, err)
	}

	width, height := int(h.Width), int(h.Height)
	if !validDimension(width) || !validDimension(height) {
		return fmt.Errorf("%w: %d x %d", ErrBadDimensions, height, width)
	}

	pix := b[blobHeaderSize:]
	if len(pix) != width*height {
		return fmt.Errorf("%w: have %d samples, want %d", ErrBadPixelData, len(pix), width*height)
	}
	for i, s := range pix {
		if s > MaxSample {
			return badPixel(i%width, i/width, fmt.Errorf("value %d out of range", s))
		}
	}

	g.Magic = Magic(h.Magic)
	g.Width = width
	g.Height = height
	g.Pix = append([]uint8(nil), pix...)

	return nil
}
