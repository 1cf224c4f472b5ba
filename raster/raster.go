/*
Package raster implements the decoder, encoder and comparator for the EBF
family of grayscale raster files.

Every file starts with a textual header; a two character tag, a newline, the
height and width as decimal integers separated by a space, and a further
newline. The pixel body follows immediately and holds height times width
samples in row-major order, each in the range 0 to 31. Depending on the
profile the body is either one raw byte per sample or whitespace separated
decimal tokens.

The three variants differ only in tag and body encoding:

	ebf  "eb"  whitespace separated text
	ebu  "eu"  packed, one byte per sample
	ebc  "ec"  packed, one byte per sample
*/
package raster

import "fmt"

const (
	// MinDimension is the smallest height or width a file may declare
	MinDimension = 1
	// MaxDimension is the largest height or width a file may declare
	MaxDimension = 262144
	// MaxSample is the largest valid sample value
	MaxSample = 31

	// DefaultMaxPixels bounds the number of samples a Decoder will
	// allocate for unless told otherwise
	DefaultMaxPixels = 1 << 28
)

// Grid is a decoded rectangular array of samples. Pix holds the samples in
// row-major order; the sample at (x, y) is Pix[y*Width+x].
type Grid struct {
	Magic  Magic
	Width  int
	Height int
	Pix    []uint8
}

func validDimension(n int) bool {
	return n >= MinDimension && n <= MaxDimension
}

// NewGrid returns a zeroed grid of the given size, tagged with m.
func NewGrid(m Magic, width, height int) (*Grid, error) {
	if !validDimension(width) || !validDimension(height) {
		return nil, fmt.Errorf("%w: %d x %d", ErrBadDimensions, height, width)
	}
	return &Grid{
		Magic:  m,
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// Sample returns the sample at (x, y).
func (g *Grid) Sample(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// SetSample sets the sample at (x, y) to v.
func (g *Grid) SetSample(x, y int, v uint8) {
	g.Pix[y*g.Width+x] = v
}
