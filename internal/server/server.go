// Package server exposes a loaded polygon table over a read-only HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"statemap/internal/geom"
	"statemap/internal/logging"
	"statemap/internal/render"
)

// Server serves lookups from a single immutable Store. Handlers only read
// the store, so requests run concurrently without locking.
type Server struct {
	store  *geom.Store
	logger *zap.Logger
	plot   render.Options
}

func New(store *geom.Store, plot render.Options, logger *zap.Logger) *Server {
	return &Server{store: store, logger: logging.OrNop(logger), plot: plot}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	})
	r.Route("/states", func(r chi.Router) {
		r.Get("/", s.listStates)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.getState)
			r.Get("/geojson", s.getGeoJSON)
			r.Get("/wkt", s.getWKT)
			r.Get("/plot", s.getPlot)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", addr), zap.Int("rows", s.store.Len()))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Encode response failed", zap.Error(err))
	}
}

func (s *Server) listStates(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.store.Summaries())
}

// getState answers a lookup. An unknown state is an empty array, not a 404.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	recs := s.store.State(chi.URLParam(r, "name"))
	if recs == nil {
		recs = []geom.Record{}
	}
	s.writeJSON(w, recs)
}

func (s *Server) getGeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if err := geom.EncodeGeoJSON(w, s.store, chi.URLParam(r, "name")); err != nil {
		s.logger.Warn("Encode geojson failed", zap.Error(err))
	}
}

func (s *Server) getWKT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, geom.EncodeWKT(s.store.State(chi.URLParam(r, "name"))))
}

func (s *Server) getPlot(w http.ResponseWriter, r *http.Request) {
	opts := s.plot
	q := r.URL.Query()
	var err error
	if opts.Width, err = intParam(q.Get("w"), opts.Width); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if opts.Height, err = intParam(q.Get("h"), opts.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if v := q.Get("close"); v != "" {
		if opts.Close, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "close: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, render.Plot(s.store.State(chi.URLParam(r, "name")), opts))
}

const maxPlotCells = 500

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxPlotCells {
		return 0, fmt.Errorf("size must be 1..%d, got %q", maxPlotCells, v)
	}
	return n, nil
}
