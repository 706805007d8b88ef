package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/session"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short cues for notices. A Sound whose speaker failed to
// initialise stays silent.
type Sound struct {
	mu      sync.Mutex
	enabled bool
}

// NewSound initialises the speaker when enabled is true. Audio failure is
// non-fatal, the game runs without sound.
func NewSound(enabled bool) *Sound {
	s := &Sound{}
	if !enabled {
		return s
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio init failed, sound disabled")
		return s
	}
	s.enabled = true
	return s
}

// Enabled reports whether cues are audible.
func (s *Sound) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Play queues the cue for n. Nil notices are ignored.
func (s *Sound) Play(n *session.Notice) {
	if n == nil || !s.Enabled() {
		return
	}
	st, err := Cue(sampleRate, n.Kind)
	if err != nil {
		log.Warn().Err(err).Msg("build audio cue")
		return
	}
	speaker.Play(st)
}

// Close silences the speaker.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		speaker.Clear()
		s.enabled = false
	}
}

// Cue builds the streamer for a notice kind: a rising arpeggio on success,
// a low tone on failure.
func Cue(sr beep.SampleRate, kind session.NoticeKind) (beep.Streamer, error) {
	if kind == session.NoticeSuccess {
		var notes []beep.Streamer
		for _, f := range []float64{660, 880, 1320} {
			sine, err := generators.SineTone(sr, f)
			if err != nil {
				return nil, err
			}
			notes = append(notes, beep.Take(sr.N(80*time.Millisecond), sine))
		}
		return beep.Seq(notes...), nil
	}
	sine, err := generators.SineTone(sr, 196)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(200*time.Millisecond), sine), nil
}
