package img2frame

import "errors"

var (
	// ErrEmptyImage is returned when an input buffer or image contains
	// no pixels.
	ErrEmptyImage = errors.New("empty image")

	// ErrOddPixelCount is returned when the number of pixels is odd and
	// cannot be packed into whole bytes at two pixels per byte.
	ErrOddPixelCount = errors.New("pixel count must be even")

	// ErrBufferSize is returned when a buffer length does not match the
	// expected pixel geometry.
	ErrBufferSize = errors.New("buffer size mismatch")

	// ErrPaletteSize is returned when serialized palette data is not
	// exactly 16 RGB triplets.
	ErrPaletteSize = errors.New("palette must be 48 bytes")

	// ErrFormat is returned when frame container data is malformed.
	ErrFormat = errors.New("invalid frame data")
)
