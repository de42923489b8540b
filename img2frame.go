package img2frame

import (
	"image"

	"github.com/wbrown/img2frame/imageutil"
)

// QuantizeFile loads an image from a path and quantizes it to a 4-bit
// Frame. Supported formats follow imageutil.LoadImage (PNG, JPEG, GIF,
// TIFF). Options configure the one-shot Quantizer; callers that need
// the quantizer's statistics should build one with NewQuantizer and
// use QuantizeImage instead.
func QuantizeFile(path string, opts ...QuantizerOption) (*Frame, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	q := NewQuantizer(opts...)
	packed, pal, err := q.Quantize(img.Pix)
	if err != nil {
		return nil, err
	}
	return &Frame{
		Pix:     packed,
		Rect:    image.Rect(0, 0, img.Width(), img.Height()),
		Palette: pal,
	}, nil
}
