package img2frame

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// frameMagic identifies the on-disk frame container.
var frameMagic = [2]byte{'F', '4'}

// FrameVersion is the container format version written by WriteTo.
const FrameVersion = 1

// frameHeader is the fixed 16-byte little-endian container header. It
// is followed by the 48-byte palette and then the packed pixel data.
type frameHeader struct {
	Magic    [2]byte
	Version  uint16
	Width    uint16
	Height   uint16
	Reserved [8]byte
}

// Frame is a 4-bit palettized image: two palette indices per byte in
// linear pixel order (even pixel in the high nibble, odd pixel in the
// low nibble) plus the 16-color palette they index. Rows are not
// byte-aligned, so with an odd width a row can begin mid-byte. Frame
// implements image.PalettedImage and the standard encoders accept it
// directly.
type Frame struct {
	// Pix holds the packed indices, NumPixels()/2 bytes.
	Pix []uint8
	// Rect is the frame's geometry, always anchored at the origin.
	Rect image.Rectangle
	// Palette holds the 16 colors the indices refer to.
	Palette Palette
}

// NewFrame allocates a frame of the given geometry with every pixel at
// index 0. The pixel count width*height must be even so the packed
// buffer holds a whole number of bytes.
func NewFrame(width, height int, pal Palette) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	if width*height%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d has %d pixels",
			ErrOddPixelCount, width, height, width*height)
	}
	return &Frame{
		Pix:     make([]uint8, width*height/2),
		Rect:    image.Rect(0, 0, width, height),
		Palette: pal,
	}, nil
}

// ColorModel returns the frame's palette as its color model.
func (f *Frame) ColorModel() color.Model {
	return f.Palette.Colors()
}

// Bounds returns the frame's geometry.
func (f *Frame) Bounds() image.Rectangle {
	return f.Rect
}

// NumPixels returns the number of pixels in the frame.
func (f *Frame) NumPixels() int {
	return f.Rect.Dx() * f.Rect.Dy()
}

// pixOffset returns the byte index and nibble shift for the pixel at
// (x, y) in linear pixel order.
func (f *Frame) pixOffset(x, y int) (int, uint) {
	i := (y-f.Rect.Min.Y)*f.Rect.Dx() + (x - f.Rect.Min.X)
	return i / 2, uint(4 * (1 - i&1))
}

// ColorIndexAt returns the palette index of the pixel at (x, y). Out
// of bounds coordinates return index 0.
func (f *Frame) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return 0
	}
	i, shift := f.pixOffset(x, y)
	return f.Pix[i] >> shift & 0x0f
}

// At returns the color of the pixel at (x, y).
func (f *Frame) At(x, y int) color.Color {
	c := f.Palette[f.ColorIndexAt(x, y)]
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// SetColorIndex sets the pixel at (x, y) to palette index idx&0x0f,
// leaving the other nibble of the shared byte untouched.
func (f *Frame) SetColorIndex(x, y int, idx uint8) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return
	}
	i, shift := f.pixOffset(x, y)
	f.Pix[i] = f.Pix[i]&^(0x0f<<shift) | (idx&0x0f)<<shift
}

// Opaque reports whether the frame is fully opaque. It always is,
// since rendering forces every alpha to 255.
func (f *Frame) Opaque() bool {
	return true
}

// RGBA expands the frame to a standard RGBA image through its palette,
// with every pixel fully opaque.
func (f *Frame) RGBA() (*image.RGBA, error) {
	rgba, err := ApplyPalette(f.Pix, f.Palette)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(f.Rect)
	copy(img.Pix, rgba)
	return img, nil
}

// WriteTo serializes the frame in container form: the 16-byte header,
// the 48-byte palette, then the packed pixel data. It implements
// io.WriterTo.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	width, height := f.Rect.Dx(), f.Rect.Dy()
	if width > 0xffff || height > 0xffff {
		return 0, fmt.Errorf("%w: %dx%d exceeds the 16-bit header dimensions",
			ErrFormat, width, height)
	}
	hdr := frameHeader{
		Magic:   frameMagic,
		Version: FrameVersion,
		Width:   uint16(width),
		Height:  uint16(height),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return 0, fmt.Errorf("failed to write frame header: %w", err)
	}
	written := int64(binary.Size(hdr))

	n, err := w.Write(f.Palette.Bytes())
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("failed to write palette: %w", err)
	}

	n, err = w.Write(f.Pix)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("failed to write pixel data: %w", err)
	}
	return written, nil
}

// ReadFrame deserializes a frame written by WriteTo. Malformed data,
// whether a bad magic, an unsupported version, impossible geometry, or
// short palette or pixel data, is rejected with an error wrapping
// ErrFormat.
func ReadFrame(r io.Reader) (*Frame, error) {
	var hdr frameHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	if hdr.Magic != frameMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, hdr.Magic[:])
	}
	if hdr.Version != FrameVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, hdr.Version)
	}
	width, height := int(hdr.Width), int(hdr.Height)
	numPixels := width * height
	if numPixels == 0 || numPixels%2 != 0 {
		return nil, fmt.Errorf("%w: impossible geometry %dx%d", ErrFormat, width, height)
	}

	palBytes := make([]byte, PaletteBytes)
	if _, err := io.ReadFull(r, palBytes); err != nil {
		return nil, fmt.Errorf("%w: reading palette: %v", ErrFormat, err)
	}
	pal, err := PaletteFromBytes(palBytes)
	if err != nil {
		return nil, err
	}

	pix := make([]uint8, numPixels/2)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, fmt.Errorf("%w: reading pixel data: %v", ErrFormat, err)
	}

	return &Frame{
		Pix:     pix,
		Rect:    image.Rect(0, 0, width, height),
		Palette: pal,
	}, nil
}

// WriteFrameFile writes the frame container to a file.
func WriteFrameFile(f *Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	_, err = f.WriteTo(out)
	return err
}

// ReadFrameFile reads a frame container from a file.
func ReadFrameFile(path string) (*Frame, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer in.Close()

	return ReadFrame(in)
}
