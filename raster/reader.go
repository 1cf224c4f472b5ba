package raster

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// Longest decimal token accepted, sign included
	maxTokenLen = 32

	// Samples allocated before any have been read
	initialPixels = 1 << 16
)

var (
	errNoDigits      = errors.New("no digits")
	errTokenTooLong  = errors.New("token too long")
	errTrailingToken = errors.New("trailing sample after image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// reader is the interface the decoder consumes. If the io.Reader passed in
// does not implement it, it is wrapped in a bufio.Reader and the decoder may
// read past the end of the image.
type reader interface {
	io.Reader
	io.ByteScanner
}

func asReader(r io.Reader) reader {
	if rr, ok := r.(reader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// Config is the header of a file.
type Config struct {
	Magic  Magic
	Width  int
	Height int
}

// Decoder decodes files written under a single profile.
type Decoder struct {
	Profile Profile

	// MaxPixels bounds Width*Height. Zero means DefaultMaxPixels.
	MaxPixels int
}

type decoder struct {
	r         reader
	profile   Profile
	maxPixels int

	config Config
	grid   *Grid

	tok [maxTokenLen]byte
}

func (d *decoder) skipSpace() error {
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		if !isSpace(c) {
			return d.r.UnreadByte()
		}
	}
}

// token skips leading whitespace and reads an optionally signed run of
// decimal digits, leaving the first byte that follows it unread.
func (d *decoder) token() ([]byte, error) {
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	b := d.tok[:0]
	c, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if c == '+' || c == '-' {
		b = append(b, c)
	} else if err := d.r.UnreadByte(); err != nil {
		return nil, err
	}

	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isDigit(c) {
			if err := d.r.UnreadByte(); err != nil {
				return nil, err
			}
			break
		}
		if len(b) == maxTokenLen {
			return nil, errTokenTooLong
		}
		b = append(b, c)
	}

	if len(b) == 0 || !isDigit(b[len(b)-1]) {
		return nil, errNoDigits
	}
	return b, nil
}

func (d *decoder) readMagic() error {
	var tag [2]byte
	if err := readFull(d.r, tag[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadMagicNumber, err)
	}

	d.config.Magic = Magic(binary.LittleEndian.Uint16(tag[:]))
	if d.config.Magic != d.profile.Magic {
		return fmt.Errorf("%w: got %q, want %q", ErrBadMagicNumber, tag[:], d.profile.Magic.String())
	}
	return nil
}

func (d *decoder) readDimension(name string) (int, error) {
	b, err := d.token()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBadDimensions, name, err)
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBadDimensions, name, err)
	}
	if !validDimension(n) {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrBadDimensions, name, n)
	}
	return n, nil
}

func (d *decoder) readHeader() error {
	if err := d.readMagic(); err != nil {
		return err
	}

	// Height comes first
	var err error
	if d.config.Height, err = d.readDimension("height"); err != nil {
		return err
	}
	if d.config.Width, err = d.readDimension("width"); err != nil {
		return err
	}

	// Swallow the single whitespace byte terminating the header, packed
	// bodies start straight after it
	c, err := d.r.ReadByte()
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrBadPixelData, err)
	case !isSpace(c):
		return d.r.UnreadByte()
	}
	return nil
}

func badPixel(x, y int, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: sample (%d, %d): %w", ErrBadPixelData, x, y, err)
}

func (d *decoder) readPacked(g *Grid, n int) error {
	for i := 0; i < n; i++ {
		c, err := d.r.ReadByte()
		if err != nil {
			return badPixel(i%g.Width, i/g.Width, err)
		}
		if c > MaxSample {
			return badPixel(i%g.Width, i/g.Width, fmt.Errorf("value %d out of range", c))
		}
		g.Pix = append(g.Pix, c)
	}
	return nil
}

func (d *decoder) parseSample(b []byte) (uint8, error) {
	s := string(b)
	neg := b[0] == '-'
	if b[0] == '+' || b[0] == '-' {
		b = b[1:]
	}
	v, err := strconv.ParseUint(string(b), 10, d.profile.SampleWidth.bits())
	if err != nil {
		return 0, err
	}
	// A negative value wraps to a huge unsigned one
	if (neg && v != 0) || v > MaxSample {
		return 0, fmt.Errorf("value %s out of range", s)
	}
	return uint8(v), nil
}

func (d *decoder) readText(g *Grid, n int) error {
	for i := 0; i < n; i++ {
		b, err := d.token()
		if err != nil {
			return badPixel(i%g.Width, i/g.Width, err)
		}
		s, err := d.parseSample(b)
		if err != nil {
			return badPixel(i%g.Width, i/g.Width, err)
		}
		g.Pix = append(g.Pix, s)
	}

	switch _, err := d.token(); err {
	case nil, errTokenTooLong:
		return fmt.Errorf("%w: %w", ErrBadPixelData, errTrailingToken)
	case io.EOF, errNoDigits:
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrBadPixelData, err)
	}
}

func (d *decoder) decode(configOnly bool) error {
	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if n := int64(d.config.Width) * int64(d.config.Height); n > int64(d.maxPixels) {
		return fmt.Errorf("%w: %d pixels exceeds limit of %d", ErrAllocation, n, d.maxPixels)
	}

	// Room is made for samples as they are read
	n := d.config.Width * d.config.Height
	g := &Grid{
		Magic:  d.config.Magic,
		Width:  d.config.Width,
		Height: d.config.Height,
		Pix:    make([]uint8, 0, min(n, initialPixels)),
	}

	var err error
	switch d.profile.Encoding {
	case PackedByte:
		err = d.readPacked(g, n)
	case WhitespaceText:
		err = d.readText(g, n)
	default:
		err = fmt.Errorf("raster: unknown encoding %d", d.profile.Encoding)
	}
	if err != nil {
		return err
	}

	d.grid = g
	return nil
}

func (dec *Decoder) newDecoder(r io.Reader) *decoder {
	d := &decoder{
		r:         asReader(r),
		profile:   dec.Profile,
		maxPixels: dec.MaxPixels,
	}
	if d.maxPixels <= 0 {
		d.maxPixels = DefaultMaxPixels
	}
	return d
}

// Decode reads a grid from r. On error no grid is returned.
func (dec *Decoder) Decode(r io.Reader) (*Grid, error) {
	d := dec.newDecoder(r)
	if err := d.decode(false); err != nil {
		return nil, err
	}
	return d.grid, nil
}

// DecodeConfig reads only the header from r.
func (dec *Decoder) DecodeConfig(r io.Reader) (Config, error) {
	d := dec.newDecoder(r)
	if err := d.decode(true); err != nil {
		return Config{}, err
	}
	return d.config, nil
}

// Decode reads a grid written under profile p from r.
func Decode(r io.Reader, p Profile) (*Grid, error) {
	dec := Decoder{Profile: p}
	return dec.Decode(r)
}

// DecodeConfig returns the tag and dimensions of a file without decoding
// the pixel body.
func DecodeConfig(r io.Reader, p Profile) (Config, error) {
	dec := Decoder{Profile: p}
	return dec.DecodeConfig(r)
}
