package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/scramble"
	"github.com/robalobadob/wordscramble/internal/timer"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newTestHost(t *testing.T, vocab ...string) (*Host, *timer.ManualClock) {
	t.Helper()
	if len(vocab) == 0 {
		vocab = []string{"CODE"}
	}
	rng := rand.New(rand.NewPCG(3, 5))
	src, err := words.NewSource(vocab, rng)
	require.NoError(t, err)
	clock := timer.NewManualClock(time.Unix(0, 0))
	h := New(game.NewEngine(src, scramble.New(rng)), Options{ID: "test", Clock: clock})
	t.Cleanup(h.Close)
	return h, clock
}

func snapshot(t *testing.T, h *Host) game.State {
	t.Helper()
	s, err := h.Snapshot(context.Background())
	require.NoError(t, err)
	return s
}

func TestInitialSnapshot(t *testing.T) {
	h, clock := newTestHost(t)
	s := snapshot(t, h)
	assert.Equal(t, "CODE", s.CurrentWord)
	assert.NotEqual(t, "CODE", s.ScrambledWord)
	assert.True(t, s.Animating)
	assert.Zero(t, s.Attempts)

	clock.Advance(game.AnimDuration)
	assert.False(t, snapshot(t, h).Animating)
}

func TestCorrectGuessAdvancesOnce(t *testing.T) {
	h, clock := newTestHost(t)
	ctx := context.Background()

	u, err := h.SubmitGuess(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, game.PhaseCorrect, u.State.Phase)
	assert.Equal(t, game.FxPop, u.State.Fx)
	assert.Equal(t, 40, u.State.Score)
	assert.Equal(t, 1, u.State.Attempts)
	require.NotNil(t, u.Notice)
	assert.Equal(t, NoticeSuccess, u.Notice.Kind)
	assert.Equal(t, "+40 points", u.Notice.Detail)
	assert.Equal(t, 40, u.Notice.Points)

	clock.Advance(game.FxDuration)
	s := snapshot(t, h)
	assert.Equal(t, game.FxNone, s.Fx)
	assert.Equal(t, game.PhaseCorrect, s.Phase)

	clock.Advance(game.CelebrateDuration - game.FxDuration)
	s = snapshot(t, h)
	assert.Equal(t, game.PhasePlaying, s.Phase)
	assert.Equal(t, 2, s.Attempts)
	assert.True(t, s.Animating)
	assert.Equal(t, 40, s.Score)

	clock.Advance(time.Hour)
	s = snapshot(t, h)
	assert.Equal(t, 2, s.Attempts, "NEW_WORD must be enqueued exactly once")
	assert.False(t, s.Animating)
}

func TestWrongGuessResets(t *testing.T) {
	h, clock := newTestHost(t)
	ctx := context.Background()

	_, err := h.EditInput(ctx, "WRONG")
	require.NoError(t, err)
	u, err := h.SubmitGuess(ctx, "WRONG")
	require.NoError(t, err)
	assert.Equal(t, game.PhaseWrong, u.State.Phase)
	assert.Equal(t, game.FxShake, u.State.Fx)
	assert.Zero(t, u.State.Score)
	assert.Equal(t, 1, u.State.Attempts)
	require.NotNil(t, u.Notice)
	assert.Equal(t, NoticeFailure, u.Notice.Kind)

	u, err = h.EditInput(ctx, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "WRONG", u.State.UserInput, "input is frozen outside playing")

	clock.Advance(game.RetryDuration)
	s := snapshot(t, h)
	assert.Equal(t, game.PhasePlaying, s.Phase)
	assert.Equal(t, "", s.UserInput)
	assert.Equal(t, game.FxNone, s.Fx)
	assert.Equal(t, "CODE", s.CurrentWord)
	assert.Equal(t, 1, s.Attempts)
}

func TestBlankGuessIgnored(t *testing.T) {
	h, _ := newTestHost(t)
	for _, raw := range []string{"", "   ", "\t\n"} {
		u, err := h.SubmitGuess(context.Background(), raw)
		require.NoError(t, err)
		assert.Zero(t, u.State.Attempts)
		assert.Nil(t, u.Notice)
		assert.Equal(t, game.PhasePlaying, u.State.Phase)
	}
}

func TestSubmitOutsidePlayingIgnored(t *testing.T) {
	h, _ := newTestHost(t)
	ctx := context.Background()
	_, err := h.SubmitGuess(ctx, "code")
	require.NoError(t, err)

	u, err := h.SubmitGuess(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, 1, u.State.Attempts)
	assert.Equal(t, 40, u.State.Score)
	assert.Nil(t, u.Notice)
}

func TestNewWordCancelsPendingRetry(t *testing.T) {
	h, clock := newTestHost(t, "CODE", "GAME")
	ctx := context.Background()

	s := snapshot(t, h)
	_, err := h.SubmitGuess(ctx, "NOPE")
	require.NoError(t, err)

	u, err := h.RequestNewWord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, u.State.Attempts)
	assert.Equal(t, game.PhasePlaying, u.State.Phase)
	assert.Equal(t, game.FxNone, u.State.Fx)
	assert.Equal(t, s.Score, u.State.Score)

	_, err = h.EditInput(ctx, "ga")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	s = snapshot(t, h)
	assert.Equal(t, "ga", s.UserInput, "old retry timer must not clear the new round's input")
	assert.Equal(t, 2, s.Attempts)
}

func TestStaleFireDropped(t *testing.T) {
	h, _ := newTestHost(t)
	before := snapshot(t, h)

	h.enqueueFire(timer.Ticket{ID: 9999, Slot: timer.SlotAdvance}, game.ActNewWord)
	after := snapshot(t, h)
	assert.Equal(t, before, after)
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	h, clock := newTestHost(t)
	ch, cancel := h.Subscribe()
	defer cancel()

	_, err := h.SubmitGuess(context.Background(), "code")
	require.NoError(t, err)

	first := recv(t, ch)
	assert.Equal(t, 1, first.State.Attempts)
	assert.Nil(t, first.Notice)

	second := recv(t, ch)
	assert.Equal(t, game.PhaseCorrect, second.State.Phase)
	require.NotNil(t, second.Notice)

	clock.Advance(game.FxDuration)
	third := recv(t, ch)
	assert.Equal(t, game.FxNone, third.State.Fx)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h, _ := newTestHost(t)
	ch, cancel := h.Subscribe()
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	_, err := h.EditInput(context.Background(), "c")
	require.NoError(t, err)
}

func TestLaggingSubscriberEndsOnLatestState(t *testing.T) {
	h, clock := newTestHost(t)
	ctx := context.Background()
	ch, cancel := h.Subscribe()
	defer cancel()

	input := ""
	for i := 0; i < 2*subscriberSize; i++ {
		input += "a"
		_, err := h.EditInput(ctx, input)
		require.NoError(t, err)
	}
	_, err := h.SubmitGuess(ctx, input)
	require.NoError(t, err)
	clock.Advance(game.RetryDuration)
	want := snapshot(t, h)
	require.Equal(t, game.PhasePlaying, want.Phase)

	var last Update
	n := 0
	for done := false; !done; {
		select {
		case u := <-ch:
			last = u
			n++
		default:
			done = true
		}
	}
	assert.Equal(t, subscriberSize, n)
	assert.Equal(t, want, last.State, "newest state must survive a full buffer")
}

func TestCloseCancelsTimers(t *testing.T) {
	h, clock := newTestHost(t)
	ch, _ := h.Subscribe()

	_, err := h.SubmitGuess(context.Background(), "code")
	require.NoError(t, err)
	require.Positive(t, clock.Pending())

	h.Close()
	h.Close()
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Hour)
	_, err = h.SubmitGuess(context.Background(), "code")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = h.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	for range ch {
	}
	late, _ := h.Subscribe()
	_, ok := <-late
	assert.False(t, ok)
}

func TestRequestHonorsContext(t *testing.T) {
	h, _ := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.EditInput(ctx, "x")
	// Either the send won the race or the context did; never a hang.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestConcurrentIntents(t *testing.T) {
	h, _ := newTestHost(t, "CODE", "GAME", "BUILD")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = h.EditInput(ctx, "x")
				_, _ = h.SubmitGuess(ctx, "nope")
				_, _ = h.RequestNewWord(ctx)
			}
		}()
	}
	wg.Wait()

	s := snapshot(t, h)
	// 400 new words, plus one attempt per judged guess.
	assert.GreaterOrEqual(t, s.Attempts, 400)
	assert.Zero(t, s.Score)
}

func TestLastActive(t *testing.T) {
	h, _ := newTestHost(t)
	before := h.LastActive()
	time.Sleep(time.Millisecond)
	_, err := h.EditInput(context.Background(), "c")
	require.NoError(t, err)
	assert.True(t, h.LastActive().After(before))
	assert.Equal(t, "test", h.ID())
}

func recv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no update received")
		return Update{}
	}
}

func TestWatchIsAtomic(t *testing.T) {
	h, _ := newTestHost(t)
	ctx := context.Background()
	_, err := h.EditInput(ctx, "c")
	require.NoError(t, err)

	s, updates, cancel, err := h.Watch(ctx)
	require.NoError(t, err)
	defer cancel()
	assert.Equal(t, "c", s.UserInput)

	_, err = h.EditInput(ctx, "co")
	require.NoError(t, err)
	u := recv(t, updates)
	assert.Equal(t, "co", u.State.UserInput, "first update follows the snapshot")
}

func TestWatchAfterClose(t *testing.T) {
	h, _ := newTestHost(t)
	h.Close()
	_, _, _, err := h.Watch(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
