// Package protocol defines what presentation clients see and send.
//
// View is the render-ready projection of a game.State. It is kept free of
// engine behaviour so any front end can consume it.
package protocol

import (
	"strconv"
	"strings"

	"github.com/robalobadob/wordscramble/internal/game"
)

// TileState is how letter tiles should be drawn.
type TileState string

const (
	TileDefault TileState = "default"
	TileCorrect TileState = "correct"
	TileWrong   TileState = "wrong"
)

// View is a client-facing snapshot. The answer is only revealed once solved.
type View struct {
	SessionID  string    `json:"sessionId,omitempty"`
	Letters    []string  `json:"letters"`
	Scrambled  string    `json:"scrambled"`
	Answer     string    `json:"answer,omitempty"`
	Input      string    `json:"input"`
	Score      int       `json:"score"`
	Attempts   int       `json:"attempts"`
	Phase      string    `json:"phase"`
	Animating  bool      `json:"animating"`
	Fx         string    `json:"fx"`
	WordLength int       `json:"wordLength"`
	Hint       string    `json:"hint"`
	Tiles      TileState `json:"tiles"`
	CanSubmit  bool      `json:"canSubmit"`
	CanEdit    bool      `json:"canEdit"`
}

// NewView projects s for display.
func NewView(sessionID string, s game.State) View {
	v := View{
		SessionID:  sessionID,
		Letters:    strings.Split(s.ScrambledWord, ""),
		Scrambled:  s.ScrambledWord,
		Input:      s.UserInput,
		Score:      s.Score,
		Attempts:   s.Attempts,
		Phase:      string(s.Phase),
		Animating:  s.Animating,
		Fx:         string(s.Fx),
		WordLength: len(s.CurrentWord),
		Hint:       Hint(s.CurrentWord),
		Tiles:      TilesFor(s.Phase),
		CanSubmit:  s.Playing() && strings.TrimSpace(s.UserInput) != "",
		CanEdit:    s.Playing(),
	}
	if s.Phase == game.PhaseCorrect {
		v.Answer = s.CurrentWord
	}
	return v
}

// Hint is the length clue shown under the input.
func Hint(word string) string {
	return "This is a " + strconv.Itoa(len(word)) + "-letter word"
}

// TilesFor maps the round phase onto tile styling.
func TilesFor(p game.Phase) TileState {
	switch p {
	case game.PhaseCorrect:
		return TileCorrect
	case game.PhaseWrong:
		return TileWrong
	}
	return TileDefault
}
