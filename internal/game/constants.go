package game

import "time"

// Fixed gameplay tuning.
const (
	ScorePerLetter = 10

	AnimDuration      = 600 * time.Millisecond  // entry animation of new tiles
	FxDuration        = 600 * time.Millisecond  // shake/pop flash
	CelebrateDuration = 1400 * time.Millisecond // correct -> next word
	RetryDuration     = 900 * time.Millisecond  // wrong -> back to playing
)

// Points returns the score awarded for solving word.
func Points(word string) int { return len(word) * ScorePerLetter }
