package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/shinji-kodama/portlauncher/internal/apps"
	"github.com/shinji-kodama/portlauncher/internal/launcher"
	"github.com/shinji-kodama/portlauncher/internal/logging"
	"github.com/shinji-kodama/portlauncher/internal/model"
)

// shutdownTimeout bounds how long in-flight requests get after the context
// passed to Serve is cancelled.
const shutdownTimeout = 5 * time.Second

// LaunchResponse is the body of /api/launch/{name}.
type LaunchResponse struct {
	Status  model.LaunchStatus `json:"status"`
	Message string             `json:"message"`
	Port    int                `json:"port,omitempty"`
}

// Server serves the launcher API.
type Server struct {
	launcher *launcher.Launcher
	mux      *http.ServeMux
}

// New creates a Server around l. The launcher's table is the one shared by
// the whole process.
func New(l *launcher.Launcher) *Server {
	s := &Server{launcher: l, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /api/launch/{name}", s.handleLaunch)
	s.mux.HandleFunc("POST /api/launch/{name}", s.handleLaunch)
	s.mux.HandleFunc("GET /api/apps", s.handleApps)
	s.mux.HandleFunc("GET /api/ports", s.handlePorts)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	s.mux.ServeHTTP(lw, r)
	logging.Debug("api request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", lw.statusCode,
		"remote", r.RemoteAddr)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	res, err := s.launcher.Launch(r.Context(), name)
	if err != nil {
		writeJSON(w, statusFor(err), LaunchResponse{
			Status:  model.LaunchFailed,
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, LaunchResponse{
		Status:  model.LaunchSucceeded,
		Message: res.Message,
		Port:    res.Port,
	})
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	platform, err := s.launcher.Platform()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	found, skipped, err := apps.Discover(s.launcher.AppsDir(), platform.Extension)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, e := range skipped {
		logging.Warn("ignoring app manifest", "error", e.Error())
	}
	if found == nil {
		found = []model.App{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"apps": found})
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	start, end := s.launcher.Table().Range()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rangeStart":  start,
		"rangeEnd":    end,
		"assignments": s.launcher.Table().Snapshot(),
	})
}

// statusFor maps a launch error to an HTTP status code.
func statusFor(err error) int {
	switch launcher.ExitCodeFor(err) {
	case model.ExitInvalidAppName:
		return http.StatusBadRequest
	case model.ExitPortAllocationFailed:
		return http.StatusServiceUnavailable
	case model.ExitUnsupportedPlatform:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{"message": err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to write response", "error", err.Error())
	}
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lw *loggingResponseWriter) WriteHeader(code int) {
	lw.statusCode = code
	lw.ResponseWriter.WriteHeader(code)
}
