// Package server exposes the accessibility checks as an HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/presenter"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/jingkaihe/a11y/pkg/version"
	"github.com/pkg/errors"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// Server serves the tool registry over HTTP
type Server struct {
	router   *mux.Router
	registry *tools.Registry
	config   *Config
	server   *http.Server
}

// Config holds the configuration for the HTTP server
type Config struct {
	Host string
	Port int
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		Host: "localhost",
		Port: 8080,
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// Address returns the host:port listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// New creates a server over registry
func New(config *Config, registry *tools.Registry) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}

	s := &Server{
		router:   mux.NewRouter(),
		registry: registry,
		config:   config,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	api.HandleFunc("/tools", s.handleListTools).Methods(http.MethodGet)
	api.HandleFunc("/tools/{name}/schema", s.handleToolSchema).Methods(http.MethodGet)
	api.HandleFunc("/tools/{name}", s.handleRunTool).Methods(http.MethodPost)

	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.corsMiddleware)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestIDMiddleware tags every request with an ID and a logger carrying it
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithLogger(r.Context(), logger.G(r.Context()).WithField("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		logger.G(r.Context()).WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration":    time.Since(start),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// ToolInfo describes a registered tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunResponse is the body returned by a successful tool run
type RunResponse struct {
	Tool   string       `json:"tool"`
	Passed bool         `json:"passed"`
	Result tools.Result `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(r.Context(), w, http.StatusOK, version.Get())
}

// handleListTools handles GET /api/tools
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	list := s.registry.List()
	infos := make([]ToolInfo, 0, len(list))
	for _, tool := range list {
		infos = append(infos, ToolInfo{Name: tool.Name(), Description: tool.Description()})
	}
	s.writeJSONResponse(r.Context(), w, http.StatusOK, infos)
}

// handleToolSchema handles GET /api/tools/{name}/schema
func (s *Server) handleToolSchema(w http.ResponseWriter, r *http.Request) {
	tool, err := s.registry.Get(mux.Vars(r)["name"])
	if err != nil {
		s.writeErrorResponse(r.Context(), w, http.StatusNotFound, err)
		return
	}
	s.writeJSONResponse(r.Context(), w, http.StatusOK, tool.GenerateSchema())
}

// handleRunTool handles POST /api/tools/{name}. The body is the tool input.
func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	if _, err := s.registry.Get(name); err != nil {
		s.writeErrorResponse(ctx, w, http.StatusNotFound, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeErrorResponse(ctx, w, http.StatusBadRequest, errors.Wrap(err, "failed to read request body"))
		return
	}
	input, err := tools.ParseInputJSON(string(body))
	if err != nil {
		s.writeErrorResponse(ctx, w, http.StatusBadRequest, err)
		return
	}

	result, err := s.registry.Run(ctx, name, input)
	if err != nil {
		status := http.StatusInternalServerError
		if tools.IsInputError(err) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(ctx, w, status, err)
		return
	}

	s.writeJSONResponse(ctx, w, http.StatusOK, RunResponse{Tool: name, Passed: result.Passed(), Result: result})
}

func (s *Server) writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.G(ctx).WithError(err).Error("failed to encode JSON response")
	}
}

func (s *Server) writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, err error) {
	logger.G(ctx).WithError(err).WithField("status", statusCode).Debug("request failed")
	s.writeJSONResponse(ctx, w, statusCode, map[string]any{
		"error":   err.Error(),
		"status":  statusCode,
		"success": false,
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	presenter.Info(fmt.Sprintf("Serving accessibility checks on http://%s", s.config.Address()))

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
