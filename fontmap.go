package img2frame

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// GlyphWidth is the width of a rendered glyph cell in pixels.
	GlyphWidth = 8
	// GlyphHeight is the height of a rendered glyph cell in pixels.
	GlyphHeight = 8
)

// GlyphBitmap represents an 8x8 character as a 64-bit integer. Each
// bit represents a pixel: 1 = foreground, 0 = background.
type GlyphBitmap uint64

// getBit checks if a specific bit is set in the bitmap.
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g&(1<<(y*GlyphWidth+x)) != 0
}

// setBit sets a specific bit in the bitmap.
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	pos := y*GlyphWidth + x
	if value {
		*g |= 1 << pos
	} else {
		*g &= ^(1 << pos)
	}
}

// FontBitmaps holds pre-rendered glyph bitmaps for one font, used to
// stamp labels onto palette cards without touching the font again.
type FontBitmaps struct {
	glyphs map[rune]GlyphBitmap
	name   string
}

// LoadFontBitmaps reads a TrueType font file and pre-renders the
// printable ASCII range to 8x8 glyph bitmaps.
func LoadFontBitmaps(path string) (*FontBitmaps, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	fb := &FontBitmaps{
		glyphs: make(map[rune]GlyphBitmap),
		name:   path,
	}
	for r := rune(32); r <= rune(126); r++ {
		fb.glyphs[r] = renderGlyphToBitmap(ttf, r)
	}
	return fb, nil
}

// Name returns the path the font was loaded from.
func (fb *FontBitmaps) Name() string {
	return fb.name
}

// GetGlyph returns the bitmap for a rune and whether it was rendered.
func (fb *FontBitmaps) GetGlyph(r rune) (GlyphBitmap, bool) {
	g, ok := fb.glyphs[r]
	return g, ok
}

// renderGlyphToBitmap rasterizes a single glyph into an 8x8 bitmap.
// Rendering goes through an alpha image so anti-aliased coverage
// survives until the 25% threshold, and the baseline comes from the
// face metrics so descenders stay inside the cell.
func renderGlyphToBitmap(ttf *truetype.Font, r rune) GlyphBitmap {
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(GlyphHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(float64(GlyphHeight))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (GlyphHeight + ascent - descent) / 2

	pt := freetype.Pt(0, baselineY)
	if _, err := ctx.DrawString(string(r), pt); err != nil {
		return 0
	}

	var bitmap GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}

// drawString stamps a string's glyph bitmaps onto img starting at
// (startX, startY), scaled by an integer factor. Unknown runes render
// as background-filled cells, and pixels outside img are dropped by
// the image's own bounds check.
func (fb *FontBitmaps) drawString(img *image.RGBA, s string, startX, startY, scale int, fg, bg RGB) {
	if scale < 1 {
		scale = 1
	}
	x := startX
	for _, r := range s {
		fb.renderBitmap(img, fb.glyphs[r], x, startY, scale, fg, bg)
		x += GlyphWidth * scale
	}
}

// renderBitmap renders a GlyphBitmap at the given position with
// scaling.
func (fb *FontBitmaps) renderBitmap(img *image.RGBA, bitmap GlyphBitmap, startX, startY, scale int, fg, bg RGB) {
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			c := bg
			if bitmap.getBit(x, y) {
				c = fg
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.SetRGBA(startX+x*scale+sx, startY+y*scale+sy,
						color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
				}
			}
		}
	}
}
