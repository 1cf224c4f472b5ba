package raster

import "fmt"

// Verdict is the result of comparing two grids.
type Verdict int

const (
	Identical Verdict = iota
	Different
)

func (v Verdict) String() string {
	if v == Identical {
		return "IDENTICAL"
	}
	return "DIFFERENT"
}

// Mismatch describes the first difference found between two grids. X, Y, A
// and B are only meaningful when Field is "sample".
type Mismatch struct {
	Field string
	X, Y  int
	A, B  int
}

func (m *Mismatch) String() string {
	if m.Field == "sample" {
		return fmt.Sprintf("sample (%d, %d) differs: %d != %d", m.X, m.Y, m.A, m.B)
	}
	return fmt.Sprintf("%s differs: %d != %d", m.Field, m.A, m.B)
}

// Diff returns the first difference between a and b, checking the tag, the
// height, the width and then each sample in row-major order. It returns nil
// if the grids are identical.
func Diff(a, b *Grid) *Mismatch {
	switch {
	case a.Magic != b.Magic:
		return &Mismatch{Field: "magic", A: int(a.Magic), B: int(b.Magic)}
	case a.Height != b.Height:
		return &Mismatch{Field: "height", A: a.Height, B: b.Height}
	case a.Width != b.Width:
		return &Mismatch{Field: "width", A: a.Width, B: b.Width}
	}

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return &Mismatch{
				Field: "sample",
				X:     i % a.Width,
				Y:     i / a.Width,
				A:     int(a.Pix[i]),
				B:     int(b.Pix[i]),
			}
		}
	}

	return nil
}

// Compare reports whether a and b are Identical or Different.
func Compare(a, b *Grid) Verdict {
	if Diff(a, b) != nil {
		return Different
	}
	return Identical
}
