package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitWidth truncates or pads s to exactly width columns, ANSI-aware.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		s = xansi.Truncate(s, width-1, "") + "…"
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// viewport cuts the columns [left, left+width) out of every line and pads
// the result to height lines.
func viewport(lines []string, left, width, height int) string {
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, 0, height)
	for _, ln := range lines {
		out = append(out, fitWidth(xansi.Cut(ln, left, left+width), width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", max(width, 0)))
	}
	return strings.Join(out, "\n")
}
