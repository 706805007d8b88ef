// internal/game/types.go
//
// Core type definitions for the Word Scramble state engine.
// Defines:
//   - Phase: judged status of the current round (playing/correct/wrong).
//   - Fx: transient cosmetic feedback flag (none/shake/pop).
//   - State: the single immutable snapshot of a game.
//   - Action: the messages the reducer understands.

package game

// Phase is the round's judged status.
type Phase string

const (
	PhasePlaying Phase = "playing"
	PhaseCorrect Phase = "correct"
	PhaseWrong   Phase = "wrong"
)

// Fx is a transient feedback signal, independent of Phase.
type Fx string

const (
	FxNone  Fx = "none"
	FxShake Fx = "shake"
	FxPop   Fx = "pop"
)

// State is a complete game snapshot. It is a value type: the reducer
// returns a new State for every action and never shares memory between
// successive states (all fields are immutable scalars or strings).
type State struct {
	CurrentWord   string `json:"currentWord"`   // answer for this round (uppercase)
	ScrambledWord string `json:"scrambledWord"` // permutation of CurrentWord shown to the player
	UserInput     string `json:"userInput"`     // in-progress guess
	Score         int    `json:"score"`         // cumulative points, never decreases
	Attempts      int    `json:"attempts"`      // new-word draws + submitted guesses
	Phase         Phase  `json:"phase"`
	Animating     bool   `json:"animating"` // entry-animation window open
	Fx            Fx     `json:"fx"`
}

// Playing reports whether the round accepts input.
func (s State) Playing() bool { return s.Phase == PhasePlaying }

// ActionType names a reducer transition.
type ActionType int

const (
	NewWord ActionType = iota + 1
	StopAnim
	SetInput
	CheckStart
	CheckOK
	CheckFail
	ResetToPlaying
	ClearFx
)

var actionNames = map[ActionType]string{
	NewWord:        "NEW_WORD",
	StopAnim:       "STOP_ANIM",
	SetInput:       "SET_INPUT",
	CheckStart:     "CHECK_START",
	CheckOK:        "CHECK_OK",
	CheckFail:      "CHECK_FAIL",
	ResetToPlaying: "RESET_TO_PLAYING",
	ClearFx:        "CLEAR_FX",
}

func (t ActionType) String() string {
	if n, ok := actionNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// SetsFx reports whether the transition raises a feedback flag.
func (t ActionType) SetsFx() bool { return t == CheckOK || t == CheckFail }

// Action is a reducer input. Value is only read by SetInput.
type Action struct {
	Type  ActionType
	Value string
}

// Convenience constructors for the parameterless actions.
var (
	ActNewWord        = Action{Type: NewWord}
	ActStopAnim       = Action{Type: StopAnim}
	ActCheckStart     = Action{Type: CheckStart}
	ActCheckOK        = Action{Type: CheckOK}
	ActCheckFail      = Action{Type: CheckFail}
	ActResetToPlaying = Action{Type: ResetToPlaying}
	ActClearFx        = Action{Type: ClearFx}
)

// ActSetInput builds a SET_INPUT action.
func ActSetInput(v string) Action { return Action{Type: SetInput, Value: v} }
