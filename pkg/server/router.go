package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	"github.com/kerbaras/fitguide/pkg/logging"
)

// Server exposes the exercise catalog over HTTP.
type Server struct {
	catalog  *catalog.Catalog
	resolver *assets.Resolver
	assetDir string
	logger   *slog.Logger
}

// New builds a Server. assetDir may be empty, in which case /assets/ is not
// served.
func New(c *catalog.Catalog, assetDir string, logger *slog.Logger) *Server {
	logger = logging.OrDiscard(logger)
	return &Server{
		catalog:  c,
		resolver: assets.NewResolver(c, logger),
		assetDir: assetDir,
		logger:   logger,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/equipment", s.handleEquipment).Methods("GET")
	api.HandleFunc("/muscles", s.handleMuscles).Methods("GET")
	api.HandleFunc("/muscles/{muscle}/exercises", s.handleMuscleExercises).Methods("GET")
	api.HandleFunc("/exercises/{name}", s.handleExercise).Methods("GET")
	api.HandleFunc("/regions", s.handleRegions).Methods("GET")
	api.HandleFunc("/hit", s.handleHit).Methods("GET")

	if s.assetDir != "" {
		r.PathPrefix("/assets/").Handler(http.FileServer(http.Dir(s.assetDir))).Methods("GET", "HEAD")
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
