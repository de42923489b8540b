package img2frame

import (
	"fmt"
	"strings"
	"testing"
)

// fillFrame builds a frame of the given geometry over testPalette with
// every pixel set to idx.
func fillFrame(t *testing.T, width, height int, idx uint8) *Frame {
	t.Helper()
	f, err := NewFrame(width, height, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.SetColorIndex(x, y, idx)
		}
	}
	return f
}

func TestRenderToANSILineCount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		width, height int
		wantLines     int
	}{
		{4, 4, 2},
		{4, 6, 3},
		{2, 3, 2},
		{4, 5, 3},
	}
	for _, tc := range testCases {
		f := fillFrame(t, tc.width, tc.height, 0)
		out := RenderToANSI(f)
		if got := strings.Count(out, "\n"); got != tc.wantLines {
			t.Errorf("%dx%d: expected %d lines, got %d",
				tc.width, tc.height, tc.wantLines, got)
		}
	}
}

func TestRenderToANSIHalfBlockCell(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(1, 2, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	f.SetColorIndex(0, 0, 1)
	f.SetColorIndex(0, 1, 2)

	top, bottom := f.Palette[1], f.Palette[2]
	expected := fmt.Sprintf("%s[38;2;%d;%d;%d;48;2;%d;%d;%dm%s%s[0m\n",
		ESC, top.R, top.G, top.B, bottom.R, bottom.G, bottom.B,
		upperHalfBlock, ESC)
	if got := RenderToANSI(f); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestRenderToANSISolidCollapses(t *testing.T) {
	t.Parallel()

	f := fillFrame(t, 3, 2, 5)
	out := RenderToANSI(f)

	if strings.Contains(out, ";48;2;") {
		t.Error("Expected no background codes for a solid frame")
	}
	if got := strings.Count(out, fullBlock); got != 3 {
		t.Errorf("Expected 3 full blocks, got %d", got)
	}
	if strings.Contains(out, upperHalfBlock) {
		t.Error("Expected no half blocks for a solid frame")
	}
}

func TestRenderToANSIOddHeight(t *testing.T) {
	t.Parallel()

	f := fillFrame(t, 2, 3, 1)
	out := RenderToANSI(f)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	last := lines[1]
	if got := strings.Count(last, upperHalfBlock); got != 2 {
		t.Errorf("Expected 2 half blocks on the last line, got %d", got)
	}
	if strings.Contains(last, ";48;2;") {
		t.Error("Expected no background codes on the trailing half row")
	}
}

func TestCompressANSISolidRun(t *testing.T) {
	t.Parallel()

	f := fillFrame(t, 8, 2, 3)
	raw := RenderToANSI(f)
	compressed := CompressANSI(raw)

	c := f.Palette[3]
	expected := fmt.Sprintf("%s[38;2;%d;%d;%dm%s%s[0m\n",
		ESC, c.R, c.G, c.B, strings.Repeat(fullBlock, 8), ESC)
	if compressed != expected {
		t.Errorf("Expected %q, got %q", expected, compressed)
	}
	if len(compressed) >= len(raw) {
		t.Errorf("Expected compression to shrink output: %d >= %d",
			len(compressed), len(raw))
	}
}

func TestCompressANSIMixedRuns(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(4, 2, testPalette())
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			idx := uint8(1)
			if x >= 2 {
				idx = 2
			}
			f.SetColorIndex(x, y, idx)
		}
	}

	left, right := f.Palette[1], f.Palette[2]
	expected := fmt.Sprintf("%s[38;2;%d;%d;%dm%s%s[38;2;%d;%d;%dm%s%s[0m\n",
		ESC, left.R, left.G, left.B, strings.Repeat(fullBlock, 2),
		ESC, right.R, right.G, right.B, strings.Repeat(fullBlock, 2),
		ESC)
	if got := CompressANSI(RenderToANSI(f)); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestCompressANSIEmpty(t *testing.T) {
	t.Parallel()

	if got := CompressANSI(""); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestExtractColors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		codes  string
		wantFg string
		wantBg string
	}{
		{"38;2;1;2;3;48;2;4;5;6", "38;2;1;2;3", "48;2;4;5;6"},
		{"38;2;10;20;30", "38;2;10;20;30", ""},
		{"48;2;7;8;9", "", "48;2;7;8;9"},
		{"0", "", ""},
		{"38;2", "", ""},
		{"1;38;2;0;0;255", "38;2;0;0;255", ""},
	}
	for _, tc := range testCases {
		fg, bg := extractColors(tc.codes)
		if fg != tc.wantFg || bg != tc.wantBg {
			t.Errorf("extractColors(%q): expected (%q, %q), got (%q, %q)",
				tc.codes, tc.wantFg, tc.wantBg, fg, bg)
		}
	}
}

func TestFormatANSICode(t *testing.T) {
	t.Parallel()

	got := formatANSICode("38;2;1;2;3", "48;2;4;5;6", fullBlock, 2)
	expected := ESC + "[38;2;1;2;3;48;2;4;5;6m" + fullBlock + fullBlock
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	got = formatANSICode("38;2;1;2;3", "", upperHalfBlock, 1)
	expected = ESC + "[38;2;1;2;3m" + upperHalfBlock
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
