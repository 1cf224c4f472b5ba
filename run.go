package ebf

import (
	"bufio"
	"fmt"
	"os"

	"github.com/MuhammadImtananWali/ebf/raster"
)

func (e *EBF) decodeFile(file string, p raster.Profile) (*raster.Grid, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, &FileError{Op: "open", Path: file, Err: err}
	}
	defer f.Close()

	dec := raster.Decoder{
		Profile:   p,
		MaxPixels: e.config.MaxPixels,
	}
	g, err := dec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &FileError{Op: "decode", Path: file, Err: err}
	}

	e.logger.Debug().Str("file", file).Str("profile", p.Name).Int("height", g.Height).Int("width", g.Width).Msg("decoded")

	return g, nil
}

func (e *EBF) encodeFile(file string, g *raster.Grid, p raster.Profile, o *raster.Options) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return &FileError{Op: "create", Path: file, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Op: "close", Path: file, Err: fmt.Errorf("%w: %w", raster.ErrBadOutput, cerr)}
		}
	}()

	if err := raster.Encode(f, g, p, o); err != nil {
		return &FileError{Op: "encode", Path: file, Err: err}
	}

	e.logger.Debug().Str("file", file).Str("profile", p.Name).Msg("encoded")

	return nil
}

// ConvertFile decodes src under in and writes it to dst under out. The
// destination is only created once src has decoded successfully.
func (e *EBF) ConvertFile(in, out raster.Profile, o *raster.Options, src, dst string) error {
	g, err := e.decodeFile(src, in)
	if err != nil {
		return err
	}
	return e.encodeFile(dst, g, out, o)
}

// CompareFiles decodes both files under p and compares them.
func (e *EBF) CompareFiles(p raster.Profile, file1, file2 string) (raster.Verdict, error) {
	g1, err := e.decodeFile(file1, p)
	if err != nil {
		return raster.Different, err
	}

	g2, err := e.decodeFile(file2, p)
	if err != nil {
		return raster.Different, err
	}

	if m := raster.Diff(g1, g2); m != nil {
		e.logger.Debug().Str("file1", file1).Str("file2", file2).Stringer("mismatch", m).Msg("files differ")
		return raster.Different, nil
	}
	return raster.Identical, nil
}

// Run runs t against the two files and returns the status line to print.
func (e *EBF) Run(t Tool, file1, file2 string) (string, error) {
	switch t.Kind {
	case Compare:
		v, err := e.CompareFiles(t.In, file1, file2)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case Echo:
		if err := e.ConvertFile(t.In, t.Out, t.Options, file1, file2); err != nil {
			return "", err
		}
		return StatusEchoed, nil
	case Convert:
		if err := e.ConvertFile(t.In, t.Out, t.Options, file1, file2); err != nil {
			return "", err
		}
		return StatusConverted, nil
	default:
		return "", fmt.Errorf("unknown tool kind %d", t.Kind)
	}
}
