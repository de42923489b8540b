package img2frame

import (
	"math"
	"testing"
)

func TestRGBUint32RoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []RGB{
		{},
		{R: 255, G: 255, B: 255},
		{R: 0x12, G: 0x34, B: 0x56},
		{R: 1},
		{B: 1},
	}
	for _, c := range testCases {
		if got := rgbFromUint32(c.toUint32()); got != c {
			t.Errorf("Expected %v, got %v", c, got)
		}
	}
	if got := (RGB{R: 0x12, G: 0x34, B: 0x56}).toUint32(); got != 0x123456 {
		t.Errorf("Expected 0x123456, got 0x%06x", got)
	}
}

func TestRGBDistanceSquared(t *testing.T) {
	t.Parallel()

	a := RGB{R: 10, G: 20, B: 30}
	if d := a.distanceSquared(a); d != 0 {
		t.Errorf("Expected zero self distance, got %d", d)
	}

	b := RGB{R: 13, G: 16, B: 30}
	if d := a.distanceSquared(b); d != 25 {
		t.Errorf("Expected distance 25, got %d", d)
	}
	if a.distanceSquared(b) != b.distanceSquared(a) {
		t.Error("Expected a symmetric distance")
	}

	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	if d := black.distanceSquared(white); d != 3*255*255 {
		t.Errorf("Expected %d, got %d", 3*255*255, d)
	}
}

func TestRGBLuminance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		c    RGB
		want float64
	}{
		{RGB{}, 0},
		{RGB{R: 255, G: 255, B: 255}, 1},
		{RGB{R: 255}, 0.299},
		{RGB{G: 255}, 0.587},
		{RGB{B: 255}, 0.114},
	}
	for _, tc := range testCases {
		if got := tc.c.Luminance(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Luminance(%v): expected %f, got %f", tc.c, tc.want, got)
		}
	}

	// Ordering matters more than the exact values: green must dominate.
	green := RGB{G: 255}
	red := RGB{R: 255}
	blue := RGB{B: 255}
	if !(blue.Luminance() < red.Luminance() && red.Luminance() < green.Luminance()) {
		t.Error("Expected blue < red < green luminance ordering")
	}
}

func TestRGBHex(t *testing.T) {
	t.Parallel()

	if got := (RGB{R: 0x1a, G: 0x2b, B: 0x3c}).Hex(); got != "#1A2B3C" {
		t.Errorf("Expected #1A2B3C, got %s", got)
	}
	if got := (RGB{}).Hex(); got != "#000000" {
		t.Errorf("Expected #000000, got %s", got)
	}
}
