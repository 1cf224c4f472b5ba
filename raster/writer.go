package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Layout selects how text bodies are broken into lines.
type Layout int

const (
	// LayoutRows writes one line per row, samples separated by a single
	// space, with no newline after the final sample
	LayoutRows Layout = iota

	// LayoutCarryRow reproduces the line layout of the old ebu to ebf
	// converter: each line holds columns 1 to width-1 of a row followed by
	// column 0 of the next row, and the last line ends with column 0 of
	// its own row. Column 0 of the first row is never written. Decoding
	// such a file does not give back the original grid.
	LayoutCarryRow
)

// Options are the encoding parameters.
type Options struct {
	// Transform, if set, is applied to every sample as it is written
	Transform func(uint8) uint8

	// Layout is only used by WhitespaceText profiles
	Layout Layout
}

// Invert maps a sample s to 255 - s. This is the transform used when
// converting between the two packed variants; the result is not scaled and
// falls outside the valid sample range.
func Invert(s uint8) uint8 {
	return 255 - s
}

type encoder struct {
	w         *bufio.Writer
	g         *Grid
	transform func(uint8) uint8

	buf []byte
}

func (e *encoder) sample(x, y int) uint8 {
	s := e.g.Sample(x, y)
	if e.transform != nil {
		s = e.transform(s)
	}
	return s
}

func (e *encoder) writeHeader(m Magic) error {
	tag := m.Bytes()
	e.buf = append(e.buf[:0], tag[:]...)
	e.buf = append(e.buf, '\n')
	e.buf = strconv.AppendInt(e.buf, int64(e.g.Height), 10)
	e.buf = append(e.buf, ' ')
	e.buf = strconv.AppendInt(e.buf, int64(e.g.Width), 10)
	e.buf = append(e.buf, '\n')
	_, err := e.w.Write(e.buf)
	return err
}

func (e *encoder) writePacked() error {
	for y := 0; y < e.g.Height; y++ {
		for x := 0; x < e.g.Width; x++ {
			if err := e.w.WriteByte(e.sample(x, y)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeToken writes s in decimal followed by sep, or nothing if sep is zero.
func (e *encoder) writeToken(s uint8, sep byte) error {
	e.buf = strconv.AppendUint(e.buf[:0], uint64(s), 10)
	if sep != 0 {
		e.buf = append(e.buf, sep)
	}
	_, err := e.w.Write(e.buf)
	return err
}

func (e *encoder) writeRows() error {
	w, h := e.g.Width, e.g.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sep byte = ' '
			switch {
			case x == w-1 && y == h-1:
				sep = 0
			case x == w-1:
				sep = '\n'
			}
			if err := e.writeToken(e.sample(x, y), sep); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeCarryRow() error {
	w, h := e.g.Width, e.g.Height
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			if err := e.writeToken(e.sample(x, y), ' '); err != nil {
				return err
			}
		}

		var err error
		if y < h-1 {
			err = e.writeToken(e.sample(0, y+1), '\n')
		} else {
			err = e.writeToken(e.sample(0, y), 0)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encode(p Profile, layout Layout) error {
	if err := e.writeHeader(p.Magic); err != nil {
		return err
	}

	switch p.Encoding {
	case PackedByte:
		return e.writePacked()
	case WhitespaceText:
		if layout == LayoutCarryRow {
			return e.writeCarryRow()
		}
		return e.writeRows()
	default:
		return fmt.Errorf("unknown encoding %d", p.Encoding)
	}
}

// Encode writes the grid g to w under profile p. If o is nil the default
// options are used.
func Encode(w io.Writer, g *Grid, p Profile, o *Options) error {
	if g == nil || !validDimension(g.Width) || !validDimension(g.Height) || len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: invalid grid", ErrBadDimensions)
	}

	e := encoder{
		w: bufio.NewWriter(w),
		g: g,
	}

	layout := LayoutRows
	if o != nil {
		e.transform = o.Transform
		layout = o.Layout
	}

	if err := e.encode(p, layout); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOutput, err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadOutput, err)
	}
	return nil
}
