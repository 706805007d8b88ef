// internal/timer/coordinator.go
//
// Timer Coordinator for the scramble state engine.
// Responsibilities:
//   - Schedule the delayed follow-up actions a committed transition implies
//     (entry-animation stop, fx clear, auto-advance, retry reset).
//   - Track every outstanding timer so all of them can be canceled on teardown.
//   - Hand out tickets so the host can refuse a fire whose timer was canceled
//     after its callback had already been queued.
//
// Notes:
//   - The coordinator never touches game state; firing only calls the
//     injected FireFunc, which is expected to enqueue the action.
//   - Each slot holds at most one timer. Scheduling into an occupied slot
//     cancels the superseded timer.

package timer

import (
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Slot identifies one independently timed effect.
type Slot int

const (
	SlotAnim    Slot = iota // STOP_ANIM after a new word
	SlotFx                  // CLEAR_FX after shake/pop
	SlotAdvance             // NEW_WORD after a correct guess
	SlotRetry               // RESET_TO_PLAYING after a wrong guess
)

func (s Slot) String() string {
	switch s {
	case SlotAnim:
		return "anim"
	case SlotFx:
		return "fx"
	case SlotAdvance:
		return "advance"
	case SlotRetry:
		return "retry"
	}
	return "unknown"
}

// Durations configures the delay of each slot.
type Durations struct {
	Anim      time.Duration
	Fx        time.Duration
	Celebrate time.Duration
	Retry     time.Duration
}

// DefaultDurations returns the fixed gameplay timings.
func DefaultDurations() Durations {
	return Durations{
		Anim:      game.AnimDuration,
		Fx:        game.FxDuration,
		Celebrate: game.CelebrateDuration,
		Retry:     game.RetryDuration,
	}
}

// Ticket identifies one scheduled timer.
type Ticket struct {
	ID   uint64
	Slot Slot
}

// FireFunc receives a due timer's ticket and action. It runs on the clock's
// goroutine and must not block for long.
type FireFunc func(Ticket, game.Action)

type pending struct {
	ticket Ticket
	stop   Stopper
}

// Coordinator owns all delayed actions for one game.
type Coordinator struct {
	mu      sync.Mutex
	clock   Clock
	d       Durations
	fire    FireFunc
	nextID  uint64
	slots   map[Slot]pending
	stopped bool
}

// New constructs a Coordinator.
func New(clock Clock, d Durations, fire FireFunc) *Coordinator {
	return &Coordinator{
		clock: clock,
		d:     d,
		fire:  fire,
		slots: make(map[Slot]pending),
	}
}

// Begin schedules what the initial state needs (the opening animation).
func (c *Coordinator) Begin(s game.State) {
	if s.Animating {
		c.Schedule(SlotAnim, c.d.Anim, game.ActStopAnim)
	}
}

// Observe schedules follow-ups for a committed transition prev --a--> next.
func (c *Coordinator) Observe(prev, next game.State, a game.Action) {
	switch a.Type {
	case game.NewWord:
		// The previous round's pending outcomes would land on the new word.
		c.Cancel(SlotAdvance)
		c.Cancel(SlotRetry)
		c.Cancel(SlotFx)
		c.Schedule(SlotAnim, c.d.Anim, game.ActStopAnim)
	case game.CheckOK:
		c.Schedule(SlotAdvance, c.d.Celebrate, game.ActNewWord)
	case game.CheckFail:
		c.Schedule(SlotRetry, c.d.Retry, game.ActResetToPlaying)
	}
	if a.Type.SetsFx() && next.Fx != game.FxNone {
		c.Schedule(SlotFx, c.d.Fx, game.ActClearFx)
	}
}

// Schedule arms a timer that fires a after d. Any timer already in slot is
// canceled first. After Stop it is a no-op and returns the zero Ticket.
func (c *Coordinator) Schedule(slot Slot, d time.Duration, a game.Action) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return Ticket{}
	}
	if p, ok := c.slots[slot]; ok {
		p.stop.Stop()
	}
	c.nextID++
	t := Ticket{ID: c.nextID, Slot: slot}
	stop := c.clock.AfterFunc(d, func() { c.fire(t, a) })
	c.slots[slot] = pending{ticket: t, stop: stop}
	return t
}

// Cancel stops the timer in slot, reporting whether one was outstanding.
func (c *Coordinator) Cancel(slot Slot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.slots[slot]
	if !ok {
		return false
	}
	p.stop.Stop()
	delete(c.slots, slot)
	return true
}

// Claim is called when a fired ticket reaches the front of the action
// queue. It reports whether the ticket is still the live timer for its slot
// and retires it; a false result means the fire is stale and must be dropped.
func (c *Coordinator) Claim(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.slots[t.Slot]
	if !ok || p.ticket != t {
		return false
	}
	delete(c.slots, t.Slot)
	return true
}

// Pending reports the number of outstanding timers.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Stop cancels every outstanding timer and refuses further scheduling.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	for slot, p := range c.slots {
		p.stop.Stop()
		delete(c.slots, slot)
	}
}
