// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints: create, snapshot, guess, input, new word, delete.
//   - Live stream: GET /sessions/{id}/ws (see ws.go).
//   - QR code linking the web client to a session.
//
// Notes:
//   - Every session is a single-player game owned by a session.Host; the
//     handlers only translate HTTP into intents and render Views.
//   - CORS is origin-aware and credentials-enabled for the web client.
//   - The WebSocket route sits outside the request timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	qr "github.com/skip2/go-qrcode"

	"github.com/robalobadob/wordscramble/internal/protocol"
	"github.com/robalobadob/wordscramble/internal/session"
	"github.com/robalobadob/wordscramble/internal/store"
)

// HostFactory starts a new game under id.
type HostFactory func(id string) *session.Host

// Options carries the non-store dependencies of the server.
type Options struct {
	ClientOrigin   string   // CORS origin; empty disables CORS headers
	PublicURL      string   // web client base for QR links
	Vocabulary     []string // listed by /debug/words
	RequestTimeout time.Duration
}

// Server bundles router, session registry and host factory.
type Server struct {
	r       *chi.Mux
	store   store.Store
	newHost HostFactory
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, factory HostFactory, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), store: st, newHost: factory, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)           // zerolog access log
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(jsonContentType)         // default JSON responses
	s.r.Use(cors(opts.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /sessions","/sessions/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(debugWordsRes{
			Vocabulary: len(s.opts.Vocabulary),
			Words:      s.opts.Vocabulary,
			Sessions:   s.store.Len(),
		})
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
			r.Post("/", s.handleCreate)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
			r.Post("/{id}/guess", s.handleGuess)
			r.Put("/{id}/input", s.handleInput)
			r.Post("/{id}/new-word", s.handleNewWord)
			r.Get("/{id}/qr.png", s.handleQR)
		})
		r.Get("/{id}/ws", s.handleWS)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Handler exposes the router (used by main with http.Server and by tests).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if origin == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http")
	})
}

// ----------------------------- SESSIONS ------------------------------------

type debugWordsRes struct {
	Vocabulary int      `json:"vocabulary"`
	Words      []string `json:"words"`
	Sessions   int      `json:"sessions"`
}

// updateRes is the payload of every session endpoint.
type updateRes struct {
	State  protocol.View   `json:"state"`
	Notice *session.Notice `json:"notice,omitempty"`
}

type guessReq struct {
	Guess string `json:"guess"`
}

type inputReq struct {
	Value string `json:"value"`
}

// handleCreate starts a fresh game and registers it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	h := s.newHost(id)
	if err := s.store.Save(r.Context(), h); err != nil {
		h.Close()
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	st, err := h.Snapshot(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(updateRes{State: protocol.NewView(id, st)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	st, err := h.Snapshot(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(updateRes{State: protocol.NewView(h.ID(), st)})
}

// handleDelete tears the game down, canceling its timers.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.intent(w, r, func(ctx context.Context, h *session.Host) (session.Update, error) {
		return h.SubmitGuess(ctx, req.Guess)
	})
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.intent(w, r, func(ctx context.Context, h *session.Host) (session.Update, error) {
		return h.EditInput(ctx, req.Value)
	})
}

func (s *Server) handleNewWord(w http.ResponseWriter, r *http.Request) {
	s.intent(w, r, func(ctx context.Context, h *session.Host) (session.Update, error) {
		return h.RequestNewWord(ctx)
	})
}

// handleQR renders a PNG QR code opening this session in the web client.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	png, err := qr.Encode(s.opts.PublicURL+"/?session="+h.ID(), qr.Medium, 256)
	if err != nil {
		log.Error().Err(err).Str("session", h.ID()).Msg("qr encode")
		http.Error(w, `{"error":"qr_failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// intent resolves the session, runs fn and renders the result.
func (s *Server) intent(w http.ResponseWriter, r *http.Request, fn func(context.Context, *session.Host) (session.Update, error)) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	u, err := fn(r.Context(), h)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(updateRes{State: protocol.NewView(h.ID(), u.State), Notice: u.Notice})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Host, bool) {
	h, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return nil, false
	}
	return h, true
}

// writeErr maps domain errors onto JSON error responses.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, session.ErrClosed):
		http.Error(w, `{"error":"session_closed"}`, http.StatusGone)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		http.Error(w, `{"error":"timeout"}`, http.StatusGatewayTimeout)
	default:
		log.Error().Err(err).Msg("session request")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}
