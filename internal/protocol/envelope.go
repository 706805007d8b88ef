package protocol

import "encoding/json"

// Message types on the session WebSocket.
const (
	// server -> client
	MsgState  = "state"
	MsgNotice = "notice"
	MsgError  = "error"

	// client -> server
	MsgSubmit  = "submit"
	MsgInput   = "input"
	MsgNewWord = "new_word"
)

// Envelope is the standard WebSocket message wrapper.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope creates an envelope with a JSON-encoded payload.
func NewEnvelope(typ string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// MustEnvelope is like NewEnvelope but panics on error.
func MustEnvelope(typ string, payload interface{}) Envelope {
	e, err := NewEnvelope(typ, payload)
	if err != nil {
		panic(err)
	}
	return e
}

// SubmitMsg carries a guess.
type SubmitMsg struct {
	Guess string `json:"guess"`
}

// InputMsg carries the in-progress guess text.
type InputMsg struct {
	Value string `json:"value"`
}

// ErrorMsg reports a rejected client message.
type ErrorMsg struct {
	Message string `json:"message"`
}
