package sink

import (
	"io"
	"strings"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/errors"
)

// Braille patterns: 2x4 dots per cell
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Braille renders src as lines of braille characters, cols cells wide
// (cols <= 0 keeps one dot per pixel; cols is capped at the source width).
// A dot is raised when any pixel it covers differs from bg, so one-pixel
// curves survive downscaling.
func Braille(src Source, bg color.RGB, cols int) []string {
	w, h := src.Width(), src.Height()
	if cols <= 0 {
		cols = (w + 1) / 2
	}
	cols = min(cols, w)
	dotsX := cols * 2
	// Keep the aspect ratio in dots.
	dotsY := max(1, h*dotsX/w)
	rows := (dotsY + 3) / 4

	pix := src.Pix()
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
	}
	for dy := 0; dy < dotsY; dy++ {
		// Source rows covered by this dot, counted from the top.
		top0, top1 := dy*h/dotsY, max((dy+1)*h/dotsY, dy*h/dotsY+1)
		for dx := 0; dx < dotsX; dx++ {
			x0, x1 := dx*w/dotsX, max((dx+1)*w/dotsX, dx*w/dotsX+1)
			if inked(pix, w, h, x0, x1, top0, top1, bg) {
				grid[dy/4][dx/2] |= pixelMap[dy%4][dx%2]
			}
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		var sb strings.Builder
		for _, m := range row {
			sb.WriteRune(0x2800 + m)
		}
		lines[i] = sb.String()
	}
	return lines
}

func inked(pix []uint8, w, h, x0, x1, top0, top1 int, bg color.RGB) bool {
	for t := top0; t < top1 && t < h; t++ {
		y := h - 1 - t
		for x := x0; x < x1 && x < w; x++ {
			i := (y*w + x) * 3
			if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B {
				return true
			}
		}
	}
	return false
}

// EncodeText writes the braille rendering of src, one line per cell row.
func EncodeText(w io.Writer, src Source, bg color.RGB, cols int) error {
	for _, line := range Braille(src, bg, cols) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write text")
		}
	}
	return nil
}
