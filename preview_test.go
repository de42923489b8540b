package img2frame

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/wbrown/img2frame/imageutil"
)

func TestFrameToImageScale(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(2, 2, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	f.SetColorIndex(0, 0, 1)
	f.SetColorIndex(1, 0, 2)
	f.SetColorIndex(0, 1, 3)
	f.SetColorIndex(1, 1, 4)

	img := FrameToImage(f, 3)
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 6 {
		t.Fatalf("Expected 6x6 image, got %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Every pixel of a 3x3 block must carry its source pixel's color.
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			c := f.Palette[f.ColorIndexAt(x/3, y/3)]
			want := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestFrameToImageClampsScale(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(4, 2, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	img := FrameToImage(f, 0)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 4x2 image at clamped scale, got %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFrameToImageMatchesRGBA(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(5, 4, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			f.SetColorIndex(x, y, uint8((x+y*5)%PaletteSize))
		}
	}

	rgba, err := f.RGBA()
	if err != nil {
		t.Fatalf("RGBA failed: %v", err)
	}
	if !bytes.Equal(FrameToImage(f, 1).Pix, rgba.Pix) {
		t.Error("Expected FrameToImage at scale 1 to match RGBA expansion")
	}
}

func TestPaletteCardGeometry(t *testing.T) {
	t.Parallel()

	pal := testPalette()
	img := PaletteCard(pal, nil, 20)
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 80 {
		t.Fatalf("Expected 80x80 card, got %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	for i, c := range pal {
		x := (i%cardColumns)*20 + 10
		y := (i/cardColumns)*20 + 10
		want := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		if got := img.RGBAAt(x, y); got != want {
			t.Errorf("Swatch %d center: expected %v, got %v", i, want, got)
		}
	}
}

func TestPaletteCardClampsCell(t *testing.T) {
	t.Parallel()

	img := PaletteCard(testPalette(), nil, 0)
	if img.Bounds().Dx() != cardColumns*16 || img.Bounds().Dy() != cardRows*16 {
		t.Errorf("Expected %dx%d card at clamped cell, got %dx%d",
			cardColumns*16, cardRows*16, img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPaletteCardUnknownGlyphsInvisible(t *testing.T) {
	t.Parallel()

	// An empty glyph table renders every label cell as pure background.
	// At this cell size the two-digit labels fit inside their swatches,
	// so the card must match the unlabeled one pixel for pixel.
	pal := testPalette()
	fb := &FontBitmaps{glyphs: map[rune]GlyphBitmap{}, name: "empty"}
	labeled := PaletteCard(pal, fb, 20)
	plain := PaletteCard(pal, nil, 20)
	if !bytes.Equal(labeled.Pix, plain.Pix) {
		t.Error("Expected unknown glyphs to leave the card unchanged")
	}
}

func TestPaletteCardIndexLabel(t *testing.T) {
	t.Parallel()

	// A solid glyph for '0' over a black palette: swatch 0's label cell
	// turns white while the rest of the swatch stays black.
	var solid GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			solid.setBit(x, y, true)
		}
	}
	fb := &FontBitmaps{glyphs: map[rune]GlyphBitmap{'0': solid}, name: "solid"}

	img := PaletteCard(Palette{}, fb, 16)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	if got := img.RGBAAt(2, 2); got != white {
		t.Errorf("Expected white label pixel, got %v", got)
	}
	if got := img.RGBAAt(12, 12); got != black {
		t.Errorf("Expected black swatch pixel, got %v", got)
	}
}

func TestSaveFramePNG(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(4, 4, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			f.SetColorIndex(x, y, uint8(x+y*4))
		}
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveFramePNG(f, path, 2); err != nil {
		t.Fatalf("SaveFramePNG failed: %v", err)
	}

	loaded, err := imageutil.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if loaded.Width() != 8 || loaded.Height() != 8 {
		t.Fatalf("Expected 8x8 PNG, got %dx%d", loaded.Width(), loaded.Height())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := f.Palette[f.ColorIndexAt(x/2, y/2)]
			if got := loaded.GetRGB(x, y); got != (imageutil.RGB{R: c.R, G: c.G, B: c.B}) {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, c, got)
			}
		}
	}
}
