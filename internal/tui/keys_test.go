package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name    string
		key     tcell.Key
		ch      rune
		input   string
		canEdit bool
		want    Command
	}{
		{"letter appends", tcell.KeyRune, 'd', "co", true, Command{IntentEdit, "cod"}},
		{"letter ignored when locked", tcell.KeyRune, 'd', "co", false, Command{}},
		{"digit ignored", tcell.KeyRune, '7', "co", true, Command{}},
		{"backspace", tcell.KeyBackspace2, 0, "cod", true, Command{IntentEdit, "co"}},
		{"backspace on empty", tcell.KeyBackspace, 0, "", true, Command{}},
		{"backspace when locked", tcell.KeyBackspace2, 0, "cod", false, Command{}},
		{"enter submits", tcell.KeyEnter, 0, " code ", true, Command{IntentSubmit, " code "}},
		{"ctrl-n", tcell.KeyCtrlN, 0, "x", false, Command{Intent: IntentNewWord}},
		{"escape", tcell.KeyEscape, 0, "", true, Command{Intent: IntentQuit}},
		{"ctrl-c", tcell.KeyCtrlC, 0, "", false, Command{Intent: IntentQuit}},
		{"other", tcell.KeyTab, 0, "x", true, Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapKey(tt.key, tt.ch, tt.input, tt.canEdit))
		})
	}
}

func TestMapKeyBackspaceIsRuneAware(t *testing.T) {
	assert.Equal(t, Command{IntentEdit, "é"}, MapKey(tcell.KeyBackspace2, 0, "éß", true))
}
