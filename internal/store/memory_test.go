package store

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/scramble"
	"github.com/robalobadob/wordscramble/internal/session"
	"github.com/robalobadob/wordscramble/internal/timer"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newHost(t *testing.T, id string) *session.Host {
	t.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	src, err := words.NewSource([]string{"CODE", "GAME"}, rng)
	require.NoError(t, err)
	clock := timer.NewManualClock(time.Unix(0, 0))
	h := session.New(game.NewEngine(src, scramble.New(rng)), session.Options{ID: id, Clock: clock})
	t.Cleanup(h.Close)
	return h
}

func isClosed(h *session.Host) bool {
	select {
	case <-h.Done():
		return true
	default:
		return false
	}
}

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	h := newHost(t, "a")

	require.NoError(t, st.Save(ctx, h))
	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, h, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, "a"))
	assert.True(t, isClosed(h))
	_, err = st.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, "a"), ErrNotFound)
}

func TestSaveReplacesAndClosesOld(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old := newHost(t, "a")
	repl := newHost(t, "a")

	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, repl))
	assert.True(t, isClosed(old))
	assert.False(t, isClosed(repl))
	assert.Equal(t, 1, st.Len())
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	idle := newHost(t, "idle")
	require.NoError(t, st.Save(ctx, idle))

	assert.Zero(t, st.Sweep(ctx, time.Now(), time.Hour))
	assert.Equal(t, 1, st.Len())

	assert.Equal(t, 1, st.Sweep(ctx, time.Now().Add(2*time.Hour), time.Hour))
	assert.Zero(t, st.Len())
	assert.True(t, isClosed(idle))
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	a, b := newHost(t, "a"), newHost(t, "b")
	require.NoError(t, st.Save(ctx, a))
	require.NoError(t, st.Save(ctx, b))

	st.Close()
	assert.Zero(t, st.Len())
	assert.True(t, isClosed(a))
	assert.True(t, isClosed(b))
}
