package img2frame

// ApplyPalette expands a packed 4-bit index buffer back into a flat
// RGBA buffer of len(packed)*8 bytes. Each pixel takes the RGB of its
// palette entry and the alpha byte is forced fully opaque, regardless
// of whatever alpha the source image carried. This is the inverse of
// Quantize up to the color loss of clustering, and exists for
// round-trip inspection and preview output.
func ApplyPalette(packed []byte, pal Palette) ([]byte, error) {
	if len(packed) == 0 {
		return nil, ErrEmptyImage
	}
	numPixels := len(packed) * 2
	rgba := make([]byte, numPixels*bytesPerPixel)
	for i := 0; i < numPixels; i++ {
		shift := uint(4 * (1 - i&1))
		c := pal[packed[i/2]>>shift&0x0f]
		o := i * bytesPerPixel
		rgba[o] = c.R
		rgba[o+1] = c.G
		rgba[o+2] = c.B
		rgba[o+3] = 0xff
	}
	return rgba, nil
}
