// internal/game/engine.go
//
// Core state engine for a single Word Scramble game.
// Responsibilities:
//   - Draw the opening word and build the initial State.
//   - Reduce (State, Action) → State as a pure, total function.
//   - Judge a submitted guess into the action sequence the host dispatches.
//
// Notes:
//   - Word selection and scrambling are delegated to a Picker and a Shuffler
//     (internal/words and internal/scramble in production).
//   - The reducer never asserts phase except for SET_INPUT, so timer-driven
//     actions arriving late are safe to apply.
//   - No I/O, no timers; scheduling follow-up actions is the host's job.
package game

import "strings"

// Picker draws a word from the vocabulary.
type Picker interface {
	Pick() string
}

// Shuffler returns a permutation of word that differs from it when possible.
type Shuffler interface {
	Distinct(word string) string
}

// Engine is the reducer plus the collaborators NEW_WORD delegates to.
type Engine struct {
	picker   Picker
	shuffler Shuffler
}

// NewEngine constructs an Engine.
func NewEngine(p Picker, s Shuffler) *Engine {
	return &Engine{picker: p, shuffler: s}
}

// deal draws the next (word, scrambled) pair.
func (e *Engine) deal() (string, string) {
	w := e.picker.Pick()
	return w, e.shuffler.Distinct(w)
}

// Initial returns the startup state: first word drawn, entry animation
// running, nothing counted yet.
func (e *Engine) Initial() State {
	w, sc := e.deal()
	return State{
		CurrentWord:   w,
		ScrambledWord: sc,
		Phase:         PhasePlaying,
		Animating:     true,
		Fx:            FxNone,
	}
}

// Apply reduces one action. Unknown actions return s unchanged.
func (e *Engine) Apply(s State, a Action) State {
	switch a.Type {
	case NewWord:
		w, sc := e.deal()
		s.CurrentWord = w
		s.ScrambledWord = sc
		s.UserInput = ""
		s.Attempts++
		s.Phase = PhasePlaying
		s.Animating = true
		s.Fx = FxNone
	case StopAnim:
		s.Animating = false
	case SetInput:
		if s.Phase == PhasePlaying {
			s.UserInput = a.Value
		}
	case CheckStart:
		s.Attempts++
	case CheckOK:
		s.Phase = PhaseCorrect
		s.Score += Points(s.CurrentWord)
		s.Fx = FxPop
	case CheckFail:
		s.Phase = PhaseWrong
		s.Fx = FxShake
	case ResetToPlaying:
		s.Phase = PhasePlaying
		s.UserInput = ""
	case ClearFx:
		s.Fx = FxNone
	}
	return s
}

// Judge runs the judging protocol for a submitted guess against s.
// It returns nil when the submit is ignored: the round is not playing, or
// the trimmed guess is empty. Otherwise it returns CHECK_START followed by
// CHECK_OK or CHECK_FAIL. Comparison is exact after trimming and uppercasing.
func Judge(s State, raw string) []Action {
	if s.Phase != PhasePlaying {
		return nil
	}
	guess := strings.TrimSpace(raw)
	if guess == "" {
		return nil
	}
	if strings.ToUpper(guess) == s.CurrentWord {
		return []Action{ActCheckStart, ActCheckOK}
	}
	return []Action{ActCheckStart, ActCheckFail}
}
