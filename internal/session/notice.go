package session

import (
	"fmt"

	"github.com/robalobadob/wordscramble/internal/game"
)

// NoticeKind classifies a transient player message.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// Notice is the side-channel message shown when a guess is judged.
type Notice struct {
	Kind   NoticeKind `json:"kind"`
	Title  string     `json:"title"`
	Detail string     `json:"detail"`
	Points int        `json:"points,omitempty"`
}

// noticeFor returns the notice a transition produces, or nil.
func noticeFor(prev, next game.State, a game.Action) *Notice {
	switch a.Type {
	case game.CheckOK:
		pts := next.Score - prev.Score
		return &Notice{
			Kind:   NoticeSuccess,
			Title:  "Correct! Well done!",
			Detail: fmt.Sprintf("+%d points", pts),
			Points: pts,
		}
	case game.CheckFail:
		return &Notice{
			Kind:   NoticeFailure,
			Title:  "Try again!",
			Detail: "Keep going, you can do it!",
		}
	}
	return nil
}
