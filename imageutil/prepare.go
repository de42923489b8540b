package imageutil

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// PrepareOptions controls the PrepareForFrame pipeline.
type PrepareOptions struct {
	// BlurRadius applies a Gaussian denoise at source resolution
	// before downscaling; zero disables it. Smoothing before the
	// resize keeps sensor noise from seeding its own clusters.
	BlurRadius float64

	// Sharpen applies a mild unsharp mask after downscaling.
	Sharpen bool
}

// PrepareForFrame resizes and filters an image into valid quantizer
// input. The image is scaled to targetWidth preserving aspect ratio,
// with the height nudged to the nearest even value whenever the
// resulting pixel count would be odd, so width*height always packs
// into whole bytes at two pixels per byte. An optional Gaussian blur
// runs before the resize and an optional unsharp mask after it.
//
// A targetWidth of 0 keeps the source width; the height nudge still
// applies.
func PrepareForFrame(img *RGBAImage, targetWidth int, opts PrepareOptions) *RGBAImage {
	src := img
	if opts.BlurRadius > 0 {
		src = &RGBAImage{RGBA: blur.Gaussian(src.RGBA, opts.BlurRadius)}
	}

	width := targetWidth
	if width <= 0 {
		width = src.Width()
	}
	aspectRatio := float64(src.Width()) / float64(src.Height())
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	if width*height%2 != 0 {
		// Both dimensions are odd here; evening the height fixes the
		// pixel count parity.
		if height == 1 {
			height = 2
		} else {
			height--
		}
	}

	out := src
	if width != src.Width() || height != src.Height() {
		out = Resize(src, width, height, InterpolationArea)
	}
	if opts.Sharpen {
		out = &RGBAImage{RGBA: effect.UnsharpMask(out.RGBA, 1.0, 0.35)}
	}
	return out
}
