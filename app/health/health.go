package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Bot       string    `json:"bot"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// RootResponse is served at "/".
type RootResponse struct {
	Message  string   `json:"message"`
	Status   string   `json:"status"`
	Commands []string `json:"commands"`
}

// Options wires the handler to the running bot. Nil funcs are treated as
// "not ready" and "no commands".
type Options struct {
	Version  string
	BotName  func() string
	Ready    func() bool
	Commands func() []string
	Registry *prometheus.Registry
}

// Handler provides health check endpoints
type Handler struct {
	startTime time.Time
	opts      Options
	now       func() time.Time
}

// NewHandler creates a new health check handler
func NewHandler(opts Options) *Handler {
	return &Handler{
		startTime: time.Now(),
		opts:      opts,
		now:       time.Now,
	}
}

// Routes mounts the endpoints on a chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	if h.opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.opts.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Health returns the health status of the application
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	bot := "starting"
	if h.opts.BotName != nil {
		if name := h.opts.BotName(); name != "" {
			bot = name
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Bot:       bot,
		Version:   h.opts.Version,
		Uptime:    h.now().Sub(h.startTime).Round(time.Second).String(),
	})
}

// Ready reports 200 once the Discord gateway is ready, 503 before.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.opts.Ready == nil || !h.opts.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Root lists the available commands.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	commands := []string{}
	if h.opts.Commands != nil {
		for _, name := range h.opts.Commands() {
			commands = append(commands, "/"+name)
		}
	}
	writeJSON(w, http.StatusOK, RootResponse{
		Message:  "WaddleTracker Discord Bot is running!",
		Status:   "online",
		Commands: commands,
	})
}

// Server runs the health routes until Shutdown.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, h *Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:         addr,
		Handler:      h.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  15 * time.Second,
	}}
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
