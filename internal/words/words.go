// internal/words/words.go
//
// Word Source for the scramble game.
//
// Responsibilities:
//   - Hold the fixed, immutable vocabulary (embedded by default).
//   - Pick a uniformly random word using an injected random source.
//   - Expose a copy of the vocabulary for the HTTP debug endpoint.
//
// Constraints:
//   • Words are uppercase ASCII letters A–Z, at least one letter long.
//   • Input lists are trimmed and uppercased; anything else is rejected.
//   • The vocabulary is copied on construction and never mutated.

package words

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordscramble/assets"
)

var (
	ErrEmptyVocabulary = errors.New("words: vocabulary is empty")
	ErrInvalidWord     = errors.New("words: invalid word")
)

// Rand is the randomness capability consumed by Pick.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Source is a fixed vocabulary plus the random source used to draw from it.
type Source struct {
	list []string
	rng  Rand
}

// NewSource validates and copies list. Duplicates are kept so callers can
// weight words by repeating them.
func NewSource(list []string, rng Rand) (*Source, error) {
	if len(list) == 0 {
		return nil, ErrEmptyVocabulary
	}
	out := make([]string, 0, len(list))
	for _, raw := range list {
		w := strings.ToUpper(strings.TrimSpace(raw))
		if !isWord(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, raw)
		}
		out = append(out, w)
	}
	return &Source{list: out, rng: rng}, nil
}

// Default builds a Source over the embedded vocabulary.
func Default(rng Rand) (*Source, error) {
	list, err := assets.Vocabulary()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return NewSource(list, rng)
}

// Pick returns a uniformly random word from the vocabulary.
func (s *Source) Pick() string {
	return s.list[s.rng.IntN(len(s.list))]
}

// Len reports the number of entries in the vocabulary.
func (s *Source) Len() int { return len(s.list) }

// Words returns a copy of the vocabulary in load order.
func (s *Source) Words() []string {
	return append([]string(nil), s.list...)
}

// isWord reports whether s is one or more uppercase ASCII letters.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
