// Package tui draws a scramble session in a terminal and maps keys to
// player intents. It only consumes protocol.View values; game rules live
// in the session host.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordscramble/internal/protocol"
	"github.com/robalobadob/wordscramble/internal/session"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
}

const (
	title    = "WORD SCRAMBLE"
	helpLine = "Enter submit · Ctrl-N new word · Esc quit"
	tileW    = 4 // three cells of tile plus one gap
)

// Rows of the card, relative to its top.
const (
	rowTitle  = 0
	rowScore  = 2
	rowTiles  = 5
	rowHint   = 7
	rowInput  = 9
	rowNotice = 11
	rowHelp   = 13
	cardRows  = 14
)

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Underline(true)
	styleLocked = tcell.StyleDefault.Foreground(tcell.ColorGray).Underline(true)
)

// TileStyle is the style of a letter tile in state ts.
func TileStyle(ts protocol.TileState) tcell.Style {
	switch ts {
	case protocol.TileCorrect:
		return tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	case protocol.TileWrong:
		return tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	default:
		return tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	}
}

// NoticeStyle is the style of the notice line.
func NoticeStyle(k session.NoticeKind) tcell.Style {
	if k == session.NoticeSuccess {
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
}

// Render draws v centered on c. A nil notice leaves the notice line blank.
func Render(c Canvas, v protocol.View, n *session.Notice) {
	c.Clear()
	w, h := c.Size()

	left := (w - cardWidth(v)) / 2
	if v.Fx == "shake" {
		left += 2
	}
	top := (h - cardRows) / 2
	if top < 0 {
		top = 0
	}

	center(c, w, top+rowTitle, title, styleTitle)
	center(c, w, top+rowScore, fmt.Sprintf("Score: %d   Attempts: %d", v.Score, v.Attempts), styleText)

	tileRow := top + rowTiles
	if v.Animating {
		tileRow--
	}
	ts := TileStyle(v.Tiles)
	if v.Fx == "pop" {
		ts = ts.Bold(true)
	}
	for i, l := range v.Letters {
		x := left + i*tileW
		r := []rune(l)
		if len(r) == 0 {
			continue
		}
		c.SetContent(x, tileRow, ' ', nil, ts)
		c.SetContent(x+1, tileRow, r[0], nil, ts)
		c.SetContent(x+2, tileRow, ' ', nil, ts)
	}

	center(c, w, top+rowHint, v.Hint, styleDim)

	in := "> " + v.Input
	is := styleInput
	if !v.CanEdit {
		is = styleLocked
	} else {
		in += "_"
	}
	center(c, w, top+rowInput, in, is)

	if n != nil {
		center(c, w, top+rowNotice, n.Title+" "+n.Detail, NoticeStyle(n.Kind))
	}
	center(c, w, top+rowHelp, helpLine, styleDim)
}

func cardWidth(v protocol.View) int {
	if len(v.Letters) == 0 {
		return 0
	}
	return len(v.Letters)*tileW - 1
}

func center(c Canvas, w, y int, s string, style tcell.Style) {
	x := (w - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}
