package ebf

import (
	"errors"
	"fmt"

	"github.com/MuhammadImtananWali/ebf/raster"
)

// Process exit statuses, one per failure class.
const (
	Success = iota
	BadArgs
	BadFile
	BadMagicNumber
	BadDim
	BadMalloc
	BadData
	BadOutput
)

var (
	// ErrBadArguments is returned when a tool is not given exactly two files
	ErrBadArguments = errors.New("bad arguments")

	errUnknownFormat = errors.New("unknown file format")
	errNoCatalog     = errors.New("no catalog configured")
)

// FileError records the file an operation failed on.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ExitStatus maps err to the process exit status.
func ExitStatus(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrBadArguments):
		return BadArgs
	case errors.Is(err, raster.ErrBadMagicNumber):
		return BadMagicNumber
	case errors.Is(err, raster.ErrBadDimensions):
		return BadDim
	case errors.Is(err, raster.ErrAllocation):
		return BadMalloc
	case errors.Is(err, raster.ErrBadPixelData):
		return BadData
	case errors.Is(err, raster.ErrBadOutput):
		return BadOutput
	default:
		return BadFile
	}
}

// Diagnostic returns the one line message printed for err.
func Diagnostic(err error) string {
	var path string
	var fe *FileError
	if errors.As(err, &fe) {
		path = fe.Path
	}

	switch ExitStatus(err) {
	case Success:
		return ""
	case BadArgs:
		return "ERROR: Bad Arguments"
	case BadMagicNumber:
		return fmt.Sprintf("ERROR: Bad Magic Number (%s)", path)
	case BadDim:
		return fmt.Sprintf("ERROR: Bad Dimensions (%s)", path)
	case BadMalloc:
		return "ERROR: Image Malloc Failed"
	case BadData:
		return fmt.Sprintf("ERROR: Bad Data (%s)", path)
	case BadOutput:
		return "ERROR: Bad Output"
	default:
		return fmt.Sprintf("ERROR: Bad File Name (%s)", path)
	}
}
