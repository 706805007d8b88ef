// Package scramble permutes the letters of a word for display.
//
// Shuffles are Fisher–Yates over the word's runes using an injected random
// source, so every permutation is equally likely and tests can seed it.
package scramble

// Rand is the randomness capability used for shuffling.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Scrambler shuffles words with its random source.
type Scrambler struct {
	rng Rand
}

// New returns a Scrambler drawing from rng.
func New(rng Rand) *Scrambler {
	return &Scrambler{rng: rng}
}

// Scramble returns a uniformly random permutation of word's letters.
// The result may equal word.
func (s *Scrambler) Scramble(word string) string {
	letters := []rune(word)
	for i := len(letters) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// Distinct scrambles until the result differs from word. Words of length
// one or less, and words whose letters are all the same, have no distinct
// arrangement and are returned unchanged.
func (s *Scrambler) Distinct(word string) string {
	if !hasDistinctArrangement(word) {
		return word
	}
	out := s.Scramble(word)
	for out == word {
		out = s.Scramble(word)
	}
	return out
}

// hasDistinctArrangement reports whether some permutation of word differs
// from it, i.e. word has at least two different letters.
func hasDistinctArrangement(word string) bool {
	var first rune
	for i, r := range word {
		if i == 0 {
			first = r
			continue
		}
		if r != first {
			return true
		}
	}
	return false
}
