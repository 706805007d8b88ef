// internal/session/host.go
//
// Host for one running scramble game.
// Responsibilities:
//   - Own the single GameState and replace it wholesale on every action.
//   - Serialize player intents and timer fires through one action queue,
//     consumed by a single goroutine (the only writer of state).
//   - Run the judging protocol for submitted guesses.
//   - Let the timer coordinator schedule follow-ups after each commit and
//     drop fires whose timer was canceled meanwhile.
//   - Fan committed states (and success/failure notices) out to subscribers.
//   - Tear down cleanly: every outstanding timer is canceled on Close.

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/timer"
)

// ErrClosed is returned by intents sent to a closed host.
var ErrClosed = errors.New("session: closed")

const (
	inboxSize      = 64
	subscriberSize = 16
)

// Update is one committed state, plus a notice when the transition judged
// a guess.
type Update struct {
	State  game.State `json:"state"`
	Notice *Notice    `json:"notice,omitempty"`
}

// Options tunes a Host. Zero values select production defaults.
type Options struct {
	ID        string
	Clock     timer.Clock
	Durations *timer.Durations
}

type msgKind int

const (
	msgSubmit msgKind = iota
	msgEdit
	msgNewWord
	msgSnapshot
	msgWatch
	msgFire
)

type message struct {
	kind   msgKind
	text   string
	ticket timer.Ticket
	action game.Action
	reply  chan Update
	watch  chan watch
}

type watch struct {
	state   game.State
	updates <-chan Update
	cancel  func()
}

// Host runs one game. All methods are safe for concurrent use.
type Host struct {
	id     string
	engine *game.Engine
	timers *timer.Coordinator

	inbox chan message
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once

	// Loop-owned.
	state game.State

	mu         sync.Mutex
	subs       map[int]chan Update
	nextSub    int
	lastActive time.Time
}

// New starts a Host over engine. The first word is drawn immediately and
// its entry animation is scheduled.
func New(engine *game.Engine, opts Options) *Host {
	clock := opts.Clock
	if clock == nil {
		clock = timer.RealClock{}
	}
	d := timer.DefaultDurations()
	if opts.Durations != nil {
		d = *opts.Durations
	}

	h := &Host{
		id:         opts.ID,
		engine:     engine,
		inbox:      make(chan message, inboxSize),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
		subs:       make(map[int]chan Update),
		lastActive: time.Now(),
	}
	h.timers = timer.New(clock, d, h.enqueueFire)
	h.state = engine.Initial()
	h.timers.Begin(h.state)

	log.Info().Str("session", h.id).Int("word_len", len(h.state.CurrentWord)).Msg("session opened")
	go h.run()
	return h
}

// ID returns the identifier given in Options.
func (h *Host) ID() string { return h.id }

// SubmitGuess judges raw against the current round. Blank guesses and
// submits outside the playing phase change nothing.
func (h *Host) SubmitGuess(ctx context.Context, raw string) (Update, error) {
	return h.request(ctx, message{kind: msgSubmit, text: raw})
}

// EditInput replaces the in-progress guess (ignored unless playing).
func (h *Host) EditInput(ctx context.Context, value string) (Update, error) {
	return h.request(ctx, message{kind: msgEdit, text: value})
}

// RequestNewWord skips to a fresh word.
func (h *Host) RequestNewWord(ctx context.Context) (Update, error) {
	return h.request(ctx, message{kind: msgNewWord})
}

// Snapshot returns the state after every previously enqueued action.
func (h *Host) Snapshot(ctx context.Context) (game.State, error) {
	u, err := h.request(ctx, message{kind: msgSnapshot})
	return u.State, err
}

// Subscribe returns a channel receiving every committed Update and a
// function to stop the subscription. The channel is closed on unsubscribe
// or when the host closes. A slow subscriber loses its oldest buffered
// updates rather than stalling the game; the latest state always arrives.
func (h *Host) Subscribe() (<-chan Update, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Update, subscriberSize)
	select {
	case <-h.done:
		close(ch)
		return ch, func() {}
	default:
	}
	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

// Watch atomically subscribes and returns the current state: every update
// on the channel is newer than the returned state.
func (h *Host) Watch(ctx context.Context) (game.State, <-chan Update, func(), error) {
	m := message{kind: msgWatch, watch: make(chan watch, 1)}
	select {
	case h.inbox <- m:
	case <-h.done:
		return game.State{}, nil, nil, ErrClosed
	case <-ctx.Done():
		return game.State{}, nil, nil, ctx.Err()
	}
	select {
	case w := <-m.watch:
		return w.state, w.updates, w.cancel, nil
	case <-h.done:
		return game.State{}, nil, nil, ErrClosed
	case <-ctx.Done():
		// The loop may still register the subscriber; release it once it does.
		go func() {
			select {
			case w := <-m.watch:
				w.cancel()
			case <-h.done:
			}
		}()
		return game.State{}, nil, nil, ctx.Err()
	}
}

// LastActive reports when a player intent was last processed.
func (h *Host) LastActive() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastActive
}

// Close stops the game loop, cancels all timers and closes subscriber
// channels. It blocks until the loop has exited and is idempotent.
func (h *Host) Close() {
	h.once.Do(func() { close(h.quit) })
	<-h.done
}

// Done is closed once the host has shut down.
func (h *Host) Done() <-chan struct{} { return h.done }

func (h *Host) request(ctx context.Context, m message) (Update, error) {
	m.reply = make(chan Update, 1)
	select {
	case h.inbox <- m:
	case <-h.done:
		return Update{}, ErrClosed
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
	select {
	case u := <-m.reply:
		return u, nil
	case <-h.done:
		return Update{}, ErrClosed
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
}

// enqueueFire is the coordinator's FireFunc. It runs on the clock goroutine.
func (h *Host) enqueueFire(t timer.Ticket, a game.Action) {
	select {
	case h.inbox <- message{kind: msgFire, ticket: t, action: a}:
	case <-h.done:
	}
}

func (h *Host) run() {
	defer h.shutdown()
	for {
		select {
		case <-h.quit:
			return
		case m := <-h.inbox:
			h.handle(m)
		}
	}
}

func (h *Host) handle(m message) {
	var notice *Notice
	switch m.kind {
	case msgSubmit:
		h.touch()
		for _, a := range game.Judge(h.state, m.text) {
			if n := h.apply(a); n != nil {
				notice = n
			}
		}
	case msgEdit:
		h.touch()
		h.apply(game.ActSetInput(m.text))
	case msgNewWord:
		h.touch()
		h.apply(game.ActNewWord)
	case msgFire:
		if !h.timers.Claim(m.ticket) {
			log.Debug().Str("session", h.id).Str("slot", m.ticket.Slot.String()).Msg("dropped stale timer")
			return
		}
		h.apply(m.action)
	case msgWatch:
		ch, cancel := h.Subscribe()
		m.watch <- watch{state: h.state, updates: ch, cancel: cancel}
	case msgSnapshot:
	}
	if m.reply != nil {
		m.reply <- Update{State: h.state, Notice: notice}
	}
}

// apply commits one action and publishes the result.
func (h *Host) apply(a game.Action) *Notice {
	prev := h.state
	next := h.engine.Apply(prev, a)
	h.state = next
	h.timers.Observe(prev, next, a)

	notice := noticeFor(prev, next, a)
	log.Debug().
		Str("session", h.id).
		Str("action", a.Type.String()).
		Str("phase", string(next.Phase)).
		Int("score", next.Score).
		Int("attempts", next.Attempts).
		Msg("apply")
	h.publish(Update{State: next, Notice: notice})
	return notice
}

func (h *Host) publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- u:
			continue
		default:
		}
		// Full buffer: evict the oldest update so the newest state lands.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- u:
		default:
		}
		log.Warn().Str("session", h.id).Int("subscriber", id).Msg("subscriber lagging, dropped oldest update")
	}
}

func (h *Host) touch() {
	h.mu.Lock()
	h.lastActive = time.Now()
	h.mu.Unlock()
}

// shutdown runs on the loop goroutine after it stops.
func (h *Host) shutdown() {
	h.timers.Stop()
	h.mu.Lock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	close(h.done)
	h.mu.Unlock()
	log.Info().Str("session", h.id).Int("score", h.state.Score).Msg("session closed")
}
