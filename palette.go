package img2frame

import (
	"fmt"
	"image/color"
)

// PaletteSize is the number of colors in every palette. The output is
// 4 bits per pixel, so the palette always holds exactly 16 entries and
// packed indices range over [0, 15].
const PaletteSize = 16

// PaletteBytes is the serialized size of a palette: 16 RGB triplets.
const PaletteBytes = PaletteSize * 3

// Palette is an ordered set of exactly 16 colors addressed by the
// packed pixel indices. After quantization slot 0 always holds pure
// black, taken over from whichever cluster came out darkest.
type Palette [PaletteSize]RGB

// Bytes serializes the palette as 48 bytes, three per entry in slot
// order (R, G, B).
func (p Palette) Bytes() []byte {
	buf := make([]byte, 0, PaletteBytes)
	for _, c := range p {
		buf = append(buf, c.R, c.G, c.B)
	}
	return buf
}

// PaletteFromBytes deserializes a 48-byte palette produced by Bytes.
// It returns ErrPaletteSize unless data is exactly 48 bytes.
func PaletteFromBytes(data []byte) (Palette, error) {
	var p Palette
	if len(data) != PaletteBytes {
		return p, fmt.Errorf("%w: got %d bytes", ErrPaletteSize, len(data))
	}
	for i := range p {
		p[i] = RGB{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}
	return p, nil
}

// Darkest returns the index of the minimum-luminance entry. The
// comparison is strict, so ties keep the lowest index and an all-white
// palette yields index 0.
func (p Palette) Darkest() int {
	darkest := 0
	minLuminance := 1.0
	for i, c := range p {
		if luminance := c.Luminance(); luminance < minLuminance {
			minLuminance = luminance
			darkest = i
		}
	}
	return darkest
}

// Colors returns the palette as a color.Palette for use with the
// standard image interfaces. Every entry is fully opaque.
func (p Palette) Colors() color.Palette {
	colors := make(color.Palette, PaletteSize)
	for i, c := range p {
		colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	return colors
}
