package raster

import "errors"

var (
	// ErrBadMagicNumber is returned when the tag does not match the profile
	ErrBadMagicNumber = errors.New("raster: bad magic number")

	// ErrBadDimensions is returned when the height or width is missing,
	// unparsable or outside MinDimension to MaxDimension
	ErrBadDimensions = errors.New("raster: bad dimensions")

	// ErrAllocation is returned when the declared size exceeds the
	// decoder's pixel budget
	ErrAllocation = errors.New("raster: image allocation failed")

	// ErrBadPixelData is returned for short reads, unparsable tokens,
	// out of range samples and trailing samples
	ErrBadPixelData = errors.New("raster: bad pixel data")

	// ErrBadOutput is returned when writing the encoded grid fails
	ErrBadOutput = errors.New("raster: bad output")
)
