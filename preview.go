package img2frame

import (
	"fmt"
	"image"

	"github.com/wbrown/img2frame/imageutil"
)

// FrameToImage expands a frame to an RGBA image scaled by an integer
// factor with nearest-neighbor sampling, keeping palette boundaries
// pixel-exact for debug dumps. A scale below 1 is treated as 1.
func FrameToImage(f *Frame, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	width, height := f.Rect.Dx(), f.Rect.Dy()
	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := f.Palette[f.ColorIndexAt(x, y)]
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					o := img.PixOffset(x*scale+dx, y*scale+dy)
					img.Pix[o] = c.R
					img.Pix[o+1] = c.G
					img.Pix[o+2] = c.B
					img.Pix[o+3] = 255
				}
			}
		}
	}

	return img
}

// SaveFramePNG writes a scaled PNG dump of the frame.
func SaveFramePNG(f *Frame, path string, scale int) error {
	return imageutil.SavePNG(FrameToImage(f, scale), path)
}

// Palette card layout: 16 swatches in a 4x4 grid.
const (
	cardColumns = 4
	cardRows    = 4
)

// PaletteCard renders the 16 palette entries as a 4x4 swatch grid,
// slot 0 in the top left. cell is the square swatch size in pixels
// and is clamped to a minimum of 16. When fb is non-nil each swatch is
// labeled with its index, plus its hex value if the swatch is wide
// enough, in black or white picked against the swatch luminance. A nil
// fb produces an unlabeled card.
func PaletteCard(pal Palette, fb *FontBitmaps, cell int) *image.RGBA {
	if cell < 16 {
		cell = 16
	}
	img := image.NewRGBA(image.Rect(0, 0, cardColumns*cell, cardRows*cell))

	for i, c := range pal {
		x0 := (i % cardColumns) * cell
		y0 := (i / cardColumns) * cell
		for y := y0; y < y0+cell; y++ {
			for x := x0; x < x0+cell; x++ {
				o := img.PixOffset(x, y)
				img.Pix[o] = c.R
				img.Pix[o+1] = c.G
				img.Pix[o+2] = c.B
				img.Pix[o+3] = 255
			}
		}

		if fb == nil {
			continue
		}
		ink := RGB{R: 255, G: 255, B: 255}
		if c.Luminance() > 0.5 {
			ink = RGB{}
		}
		fb.drawString(img, fmt.Sprintf("%d", i), x0+2, y0+2, 1, ink, c)
		hex := c.Hex()
		// The hex label needs seven glyph cells plus margins.
		if cell >= len(hex)*GlyphWidth+4 {
			fb.drawString(img, hex, x0+2, y0+cell-GlyphHeight-2, 1, ink, c)
		}
	}

	return img
}
