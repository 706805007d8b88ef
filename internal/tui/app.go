package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/protocol"
	"github.com/robalobadob/wordscramble/internal/session"
)

// App drives one session on a terminal screen.
type App struct {
	screen tcell.Screen
	host   *session.Host
	sound  *Sound

	mu      sync.Mutex // guards view for View
	view    protocol.View
	notice  *session.Notice
	updates <-chan session.Update
}

// NewApp binds a screen to a running host. sound may be nil.
func NewApp(screen tcell.Screen, host *session.Host, sound *Sound) *App {
	if sound == nil {
		sound = &Sound{}
	}
	return &App{screen: screen, host: host, sound: sound}
}

// Run draws the session and processes keys until the player quits, ctx is
// canceled or the host closes. The screen is not finalised.
func (a *App) Run(ctx context.Context) error {
	st, updates, cancel, err := a.host.Watch(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	a.updates = updates
	a.setView(protocol.NewView(a.host.ID(), st))
	a.draw()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-a.updates:
			if !ok {
				return nil
			}
			a.observe(u)
			a.draw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			case *tcell.EventKey:
				done, err := a.handleKey(ctx, ev)
				if done || err != nil {
					return err
				}
				a.drain()
				a.draw()
			}
		}
	}
}

// View is the last state drawn.
func (a *App) View() protocol.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) setView(v protocol.View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	cmd := MapKey(ev.Key(), ev.Rune(), a.view.Input, a.view.CanEdit)
	var err error
	switch cmd.Intent {
	case IntentNone:
		return false, nil
	case IntentQuit:
		return true, nil
	case IntentEdit:
		_, err = a.host.EditInput(ctx, cmd.Value)
	case IntentSubmit:
		_, err = a.host.SubmitGuess(ctx, cmd.Value)
	case IntentNewWord:
		_, err = a.host.RequestNewWord(ctx)
	}
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, session.ErrClosed), errors.Is(err, context.Canceled):
		return true, nil
	default:
		log.Error().Err(err).Msg("tui intent")
		return false, nil
	}
}

// drain applies updates already published for the last intent, so the
// next key is mapped against the state that intent produced.
func (a *App) drain() {
	for {
		select {
		case u, ok := <-a.updates:
			if !ok {
				return
			}
			a.observe(u)
		default:
			return
		}
	}
}

func (a *App) observe(u session.Update) {
	a.setView(protocol.NewView(a.host.ID(), u.State))
	switch {
	case u.Notice != nil:
		a.notice = u.Notice
		a.sound.Play(u.Notice)
	case u.State.Playing():
		a.notice = nil
	}
}

func (a *App) draw() {
	Render(a.screen, a.view, a.notice)
	a.screen.Show()
}
