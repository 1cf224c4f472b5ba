package ebf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	"image/png"
	"os"
	"path/filepath"

	"github.com/MuhammadImtananWali/ebf/raster"
)

// profileFor picks the profile from the extension of file.
func profileFor(file string) (raster.Profile, error) {
	p, ok := raster.ProfileByExt(filepath.Ext(file))
	if !ok {
		return raster.Profile{}, &FileError{Op: "open", Path: file, Err: errUnknownFormat}
	}
	return p, nil
}

// DecodeFile decodes file using the profile matching its extension.
func (e *EBF) DecodeFile(file string) (*raster.Grid, error) {
	p, err := profileFor(file)
	if err != nil {
		return nil, err
	}
	return e.decodeFile(file, p)
}

// Inspect reads the header of file, choosing the profile from the tag in
// the file rather than its extension.
func (e *EBF) Inspect(file string) (raster.Profile, raster.Config, error) {
	f, err := os.Open(file)
	if err != nil {
		return raster.Profile{}, raster.Config{}, &FileError{Op: "open", Path: file, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	tag, err := r.Peek(2)
	if err != nil {
		return raster.Profile{}, raster.Config{}, &FileError{Op: "inspect", Path: file, Err: fmt.Errorf("%w: %w", raster.ErrBadMagicNumber, err)}
	}

	p, ok := raster.ProfileByMagic(raster.Magic(binary.LittleEndian.Uint16(tag)))
	if !ok {
		return raster.Profile{}, raster.Config{}, &FileError{Op: "inspect", Path: file, Err: fmt.Errorf("%w: unknown tag %q", raster.ErrBadMagicNumber, tag)}
	}

	c, err := raster.DecodeConfig(r, p)
	if err != nil {
		return raster.Profile{}, raster.Config{}, &FileError{Op: "inspect", Path: file, Err: err}
	}
	return p, c, nil
}

// Import reads a PNG, JPEG or GIF image from src, reduces it to 32 gray
// levels and writes it to dst using the profile matching dst's extension.
func (e *EBF) Import(src, dst string) error {
	p, err := profileFor(dst)
	if err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return &FileError{Op: "open", Path: src, Err: err}
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return &FileError{Op: "decode", Path: src, Err: err}
	}

	g, err := raster.FromImage(m, p.Magic)
	if err != nil {
		return &FileError{Op: "import", Path: src, Err: err}
	}

	e.logger.Debug().Str("file", src).Str("format", format).Int("height", g.Height).Int("width", g.Width).Msg("imported")

	return e.encodeFile(dst, g, p, nil)
}

// Export decodes src using the profile matching its extension and writes it
// to dst as a grayscale PNG.
func (e *EBF) Export(src, dst string) (err error) {
	g, err := e.DecodeFile(src)
	if err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return &FileError{Op: "create", Path: dst, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Op: "close", Path: dst, Err: fmt.Errorf("%w: %w", raster.ErrBadOutput, cerr)}
		}
	}()

	if err := png.Encode(f, g); err != nil {
		return &FileError{Op: "encode", Path: dst, Err: fmt.Errorf("%w: %w", raster.ErrBadOutput, err)}
	}

	return nil
}
