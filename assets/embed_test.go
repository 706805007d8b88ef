package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary(t *testing.T) {
	v, err := Vocabulary()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"REACT", "JAVASCRIPT", "COMPUTER", "DEVELOP", "PROGRAM",
		"DESIGN", "CREATE", "BUILD", "SOLVE", "THINK",
		"LEARN", "STUDY", "WRITE", "CODE", "GAME",
	}, v)
}

func TestReadLinesMissing(t *testing.T) {
	_, err := readLines("nope.txt")
	assert.Error(t, err)
}
