// Package server exposes the configurator over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/FurniCraft/internal/catalog"
	"github.com/piwi3910/FurniCraft/internal/cutlist"
	"github.com/piwi3910/FurniCraft/internal/model"
	"github.com/piwi3910/FurniCraft/internal/pricing"
)

// UserHeader carries the signed-in user's id.
const UserHeader = "X-User-ID"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ConfigurationRepository persists saved configurations per user. It reports
// store.ErrNotFound and store.ErrUnauthenticated.
type ConfigurationRepository interface {
	Save(ctx context.Context, userID string, c model.SavedConfiguration) (model.SavedConfiguration, error)
	ListByUser(ctx context.Context, userID string) ([]model.SavedConfiguration, error)
	Get(ctx context.Context, id string) (model.SavedConfiguration, error)
	Delete(ctx context.Context, userID, id string) error
}

// Options wires the server's collaborators.
type Options struct {
	Catalog        *catalog.Service
	Configurations ConfigurationRepository
	Config         model.AppConfig
	CutList        cutlist.Options
	Logger         *slog.Logger
}

// Server handles the API routes.
type Server struct {
	catalog  *catalog.Service
	configs  ConfigurationRepository
	cfg      model.AppConfig
	cutOpts  cutlist.Options
	strategy pricing.Strategy
	logger   *slog.Logger
}

// New builds a Server. A nil catalog serves the fallback patterns only.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	svc := opts.Catalog
	if svc == nil {
		svc = catalog.NewService(nil, catalog.DefaultOptions())
	}
	strategy, err := pricing.ParseStrategy(opts.Config.PricingStrategy)
	if err != nil {
		logger.Warn("unknown pricing strategy, using default", "strategy", opts.Config.PricingStrategy)
	}
	cutOpts := opts.CutList
	if cutOpts.BoardSheet.Width <= 0 || cutOpts.BackSheet.Width <= 0 {
		cutOpts = cutlist.DefaultOptions()
	}
	s := &Server{
		catalog:  svc,
		configs:  opts.Configurations,
		cfg:      opts.Config,
		cutOpts:  cutOpts,
		strategy: strategy,
		logger:   logger.With("component", "server"),
	}
	return s
}

// Routes returns the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/geometry", s.handleGeometry)
		r.Post("/price", s.handlePrice)
		r.Post("/cutlist", s.handleCutList)
		r.Post("/cutlist.txt", s.handleCutListText)

		r.Get("/patterns", s.handlePatterns)
		r.Get("/patterns/{id}", s.handlePattern)
		r.Get("/categories", s.handleCategories)
		r.Get("/finishes/{finish}", s.handleFinish)

		r.Post("/configurations/normalize", s.handleNormalize)
		r.Get("/configurations", s.handleListConfigurations)
		r.Post("/configurations", s.handleSaveConfiguration)
		r.Get("/configurations/{id}", s.handleGetConfiguration)
		r.Delete("/configurations/{id}", s.handleDeleteConfiguration)
	})
	return r
}

// ListenAndServe serves Routes on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
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
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
