package img2frame

import "fmt"

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. Colors travel through the
// quantizer as plain channel triplets; alpha is handled separately by
// the pixel buffers.
type RGB struct {
	R, G, B uint8
}

// toUint32 packs an RGB color into a 32-bit unsigned integer in
// 0xRRGGBB order, used as a map key by the color cache.
func (c RGB) toUint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// rgbFromUint32 converts a 32-bit unsigned integer to an RGB color.
func rgbFromUint32(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// distanceSquared calculates the squared Euclidean distance between two
// RGB colors, the sum of the squared per-channel differences. Cluster
// assignment only compares distances, so the square root is never taken.
func (c RGB) distanceSquared(other RGB) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// Luminance returns the perceived brightness of the color in [0, 1]
// using the BT.601 weights: 0.299*R + 0.587*G + 0.114*B with the
// channels normalized to [0, 1].
func (c RGB) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// Hex returns the color formatted as a #RRGGBB hex string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
