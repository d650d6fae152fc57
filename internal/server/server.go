// Package server hosts the local preview server used by `scribe serve`.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/StevenPG/scribe/internal/log"
)

// Server serves the generated output directory for local preview.
type Server struct {
	outputDir string
	logger    zerolog.Logger
}

func New(outputDir string) *Server {
	return &Server{
		outputDir: outputDir,
		logger:    log.WithComponent("server"),
	}
}

// Handler builds the preview router: request logging, no-store caching, and
// a file server that refuses bare directory listings.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(noCache)

	fileServer := http.FileServer(http.Dir(s.outputDir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		// Directory URLs only resolve when the build produced an index.html
		// there; anything else is a 404, not a listing.
		if strings.HasSuffix(req.URL.Path, "/") && req.URL.Path != "/" {
			index := filepath.Join(s.outputDir, filepath.FromSlash(req.URL.Path), "index.html")
			if _, err := os.Stat(index); os.IsNotExist(err) {
				http.NotFound(w, req)
				return
			}
		}
		fileServer.ServeHTTP(w, req)
	})
	return r
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info().Int("port", port).Str("dir", s.outputDir).Msg("preview server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview server failed: %w", err)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		s.logger.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// noCache disables client caching so edits show up on plain reloads during
// development.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, req)
	})
}
