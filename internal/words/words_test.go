package words

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func TestNewSourceNormalizes(t *testing.T) {
	src, err := NewSource([]string{" code ", "Game"}, seeded())
	require.NoError(t, err)
	assert.Equal(t, []string{"CODE", "GAME"}, src.Words())
}

func TestNewSourceRejects(t *testing.T) {
	tests := []struct {
		name string
		list []string
		want error
	}{
		{"empty", nil, ErrEmptyVocabulary},
		{"blank word", []string{"CODE", "  "}, ErrInvalidWord},
		{"digits", []string{"C0DE"}, ErrInvalidWord},
		{"non ascii", []string{"CAFÉ"}, ErrInvalidWord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(tt.list, seeded())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPickStaysInVocabulary(t *testing.T) {
	src, err := NewSource([]string{"CODE", "GAME", "BUILD"}, seeded())
	require.NoError(t, err)

	seen := map[string]int{}
	for i := 0; i < 3000; i++ {
		w := src.Pick()
		require.Contains(t, src.Words(), w, "picked %q", w)
		seen[w]++
	}
	// Uniform draw: every word shows up a reasonable number of times.
	for _, w := range src.Words() {
		assert.Greater(t, seen[w], 800, "word %s drawn %d times", w, seen[w])
	}
}

func TestPickSingleWord(t *testing.T) {
	src, err := NewSource([]string{"CODE"}, seeded())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "CODE", src.Pick())
	}
}

func TestDefaultVocabulary(t *testing.T) {
	src, err := Default(seeded())
	require.NoError(t, err)
	assert.Equal(t, 15, src.Len())
	assert.Contains(t, src.Words(), "JAVASCRIPT")
	assert.Contains(t, src.Words(), "CODE")
}

func TestWordsReturnsCopy(t *testing.T) {
	src, err := NewSource([]string{"CODE"}, seeded())
	require.NoError(t, err)
	ws := src.Words()
	ws[0] = "XXXX"
	assert.Equal(t, "CODE", src.Pick())
}
