package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes text starting at (x, y), clipped to the screen width
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
}

// drawCentered writes text centered on row y
func drawCentered(s tcell.Screen, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	drawText(s, (w-runewidth.StringWidth(text))/2, y, style, text)
}

// fillRect paints r with style
func fillRect(s tcell.Screen, r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}
