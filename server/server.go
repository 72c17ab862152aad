// Package server exposes the saved vocabulary over a small HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/AYColumbia/glosser/vocab"
)

// Store is the persistence surface the API serves. vocab.Store satisfies it.
type Store interface {
	List(ctx context.Context) ([]vocab.Entry, error)
	Get(ctx context.Context, id string) (vocab.Entry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Server serves the vocabulary API.
type Server struct {
	store Store
	log   zerolog.Logger
	addr  string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// New creates a server over the given store.
func New(store Store, opts ...Option) *Server {
	s := &Server{
		store: store,
		log:   zerolog.Nop(),
		addr:  ":8470",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.healthzHandler)
	r.Get("/api/words", s.listWordsHandler)
	r.Get("/api/words/{id}", s.getWordHandler)
	r.Delete("/api/words/{id}", s.deleteWordHandler)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("serving vocabulary API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Count(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "words": n})
}

func (s *Server) listWordsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("listing entries failed")
		s.writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if entries == nil {
		entries = []vocab.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getWordHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.store.Get(r.Context(), id)
	if errors.Is(err, vocab.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("fetching entry failed")
		s.writeError(w, http.StatusInternalServerError, "failed to fetch entry")
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteWordHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, vocab.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("deleting entry failed")
		s.writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
