package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Intent is what a key press asks the session to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentEdit
	IntentSubmit
	IntentNewWord
	IntentQuit
)

// Command is a mapped key press. Value is the new input text for
// IntentEdit and the guess for IntentSubmit.
type Command struct {
	Intent Intent
	Value  string
}

// MapKey turns a key press into a Command given the current input text.
// Editing keys are ignored unless the game accepts input.
func MapKey(key tcell.Key, ch rune, input string, canEdit bool) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Intent: IntentQuit}
	case tcell.KeyCtrlN:
		return Command{Intent: IntentNewWord}
	case tcell.KeyEnter:
		return Command{Intent: IntentSubmit, Value: input}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if !canEdit || input == "" {
			return Command{}
		}
		r := []rune(input)
		return Command{Intent: IntentEdit, Value: string(r[:len(r)-1])}
	case tcell.KeyRune:
		if !canEdit || !unicode.IsLetter(ch) {
			return Command{}
		}
		return Command{Intent: IntentEdit, Value: input + string(ch)}
	}
	return Command{}
}
