package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is the one-line summary shown in the HUD.
type Status struct {
	Scene    string
	Items    int
	Capacity int
	Merger   bool
	Turn     int
}

func (s Status) String() string {
	merger := "locked"
	if s.Merger {
		merger = "ready"
	}
	return fmt.Sprintf("%s  Bag: %d/%d  Merger: %s  Turn: %d", s.Scene, s.Items, s.Capacity, merger, s.Turn)
}

// hudHint lists the world keys.
const hudHint = "[arrows/hjkl] move  [,] pick up  [e] use  [i] bag  [q] quit"

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(st Status, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)
	r.drawText(0, hudY+1, st.String(), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 2 messages).
	start := len(messages) - 2
	if start < 0 {
		start = 0
	}
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	r.drawText(0, hudY+4, hudHint, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x and returns the column after it.
// Wide runes advance two columns; zero-width runes are dropped.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
