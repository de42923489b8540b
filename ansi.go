package img2frame

import (
	"fmt"
	"strings"
)

// ESC is the ANSI escape character.
const ESC = ""

const (
	upperHalfBlock = "▀"
	fullBlock      = "█"
)

// RenderToANSI renders a frame as truecolor ANSI art for terminal
// inspection. Each character cell covers a 1x2 column of pixels: the
// top pixel colors the foreground of an upper half block and the
// bottom pixel colors the background. Cells whose two pixels share a
// palette entry collapse to a full block with no background code. For
// frames of odd height the last pixel row renders as foreground-only
// half blocks.
func RenderToANSI(f *Frame) string {
	var sb strings.Builder
	width, height := f.Rect.Dx(), f.Rect.Dy()

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := f.Palette[f.ColorIndexAt(x, y)]
			if y+1 >= height {
				sb.WriteString(fmt.Sprintf("%s[38;2;%d;%d;%dm%s",
					ESC, top.R, top.G, top.B, upperHalfBlock))
				continue
			}
			bottom := f.Palette[f.ColorIndexAt(x, y+1)]
			if top == bottom {
				sb.WriteString(fmt.Sprintf("%s[38;2;%d;%d;%dm%s",
					ESC, top.R, top.G, top.B, fullBlock))
				continue
			}
			sb.WriteString(fmt.Sprintf("%s[38;2;%d;%d;%d;48;2;%d;%d;%dm%s",
				ESC, top.R, top.G, top.B, bottom.R, bottom.G, bottom.B,
				upperHalfBlock))
		}
		sb.WriteString(fmt.Sprintf("%s[0m\n", ESC))
	}

	return sb.String()
}

// CompressANSI compresses an ANSI image by combining adjacent cells
// with the same foreground and background colors. The function takes
// an ANSI image as a string and returns the more efficient ANSI image
// as a string.
func CompressANSI(ansiImage string) string {
	var compressed strings.Builder
	var currentFg, currentBg, currentBlock string
	var count int

	lines := strings.Split(ansiImage, "\n")
	for _, line := range lines {
		segments := strings.Split(line, ESC+"[")
		for _, segment := range segments {
			if segment == "" {
				continue
			}
			parts := strings.SplitN(segment, "m", 2)
			if len(parts) != 2 {
				continue
			}
			colorCode, block := parts[0], parts[1]
			if colorCode == "0" && block == "" {
				// Row reset, re-emitted below.
				continue
			}
			fg, bg := extractColors(colorCode)

			// If any color or block changes, write the current run
			// and start a new one
			if fg != currentFg || bg != currentBg || block != currentBlock {
				if count > 0 {
					compressed.WriteString(
						formatANSICode(
							currentFg, currentBg, currentBlock, count))
				}
				currentFg, currentBg, currentBlock = fg, bg, block
				count = 1
			} else {
				count++
			}
		}
		// Write the last run of the line
		if count > 0 {
			compressed.WriteString(
				formatANSICode(currentFg, currentBg, currentBlock, count))
			compressed.WriteString(fmt.Sprintf("%s[0m\n", ESC))
		}
		count = 0
		currentFg, currentBg, currentBlock = "", "", ""
	}

	return compressed.String()
}

// formatANSICode formats an ANSI color code with the given foreground
// and background colors, block character, and count. The function
// returns the ANSI color code as a string, with the block character
// repeated count times.
func formatANSICode(fg, bg, block string, count int) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	if fg != "" {
		code.WriteString(fg)
		if bg != "" {
			code.WriteByte(';')
		}
	}
	if bg != "" {
		code.WriteString(bg)
	}
	code.WriteByte('m')
	code.WriteString(strings.Repeat(block, count))
	return code.String()
}

// extractColors extracts the foreground and background color codes
// from an ANSI color code sequence. Truecolor codes consume five
// elements (38;2;r;g;b and 48;2;r;g;b); anything else is ignored.
func extractColors(colorCodes string) (fg string, bg string) {
	colors := strings.Split(colorCodes, ";")
	for i := 0; i < len(colors); i++ {
		if colors[i] == "38" && i+4 < len(colors) && colors[i+1] == "2" {
			fg = strings.Join(colors[i:i+5], ";")
			i += 4
		} else if colors[i] == "48" && i+4 < len(colors) && colors[i+1] == "2" {
			bg = strings.Join(colors[i:i+5], ";")
			i += 4
		}
	}
	return fg, bg
}
