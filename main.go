package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/session"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	src, err := words.Default(game.NewRand(cfg.Seed))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	vocab := src.Words()

	mem := store.NewMemoryStore()
	seeds := session.NewSeeds(cfg.Seed)
	newHost := func(id string) *session.Host {
		engine, err := session.NewEngine(vocab, seeds.Next())
		if err != nil {
			// vocabulary was validated at startup
			panic(err)
		}
		return session.New(engine, session.Options{ID: id})
	}

	srv := httpserver.New(mem, newHost, httpserver.Options{
		ClientOrigin: cfg.ClientOrigin,
		PublicURL:    cfg.PublicURL,
		Vocabulary:   vocab,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweep(ctx, mem, cfg.SessionIdleTTL)

	hs := &http.Server{Addr: cfg.Addr(), Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info().Str("port", cfg.Port).Int("words", len(vocab)).Msg("starting wordscramble server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	mem.Close()
}

// sweep closes sessions idle for longer than ttl.
func sweep(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			st.Sweep(ctx, now, ttl)
		}
	}
}
