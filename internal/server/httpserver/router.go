package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics serves the Prometheus exposition; nil disables the route.
	Metrics http.Handler

	// MetricsPath is the route of Metrics.
	MetricsPath string

	// Stats returns the document served on /stats; nil disables the route.
	Stats func() any

	// Logger for request logging.
	Logger *slog.Logger

	// RateLimit is the rate limit per client IP (requests/second).
	RateLimit int
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		MetricsPath: "/metrics",
		Logger:      slog.Default(),
	}
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Stats != nil {
		mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, cfg.Stats())
		})
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, cfg.Metrics)
	}

	// Order: RateLimit -> RequestID -> Recover -> AccessLog -> mux
	middlewares := []Middleware{RequestID(), Recover(logger), AccessLog(logger)}
	if cfg.RateLimit > 0 {
		middlewares = append([]Middleware{RateLimit(cfg.RateLimit)}, middlewares...)
	}
	return Chain(mux, middlewares...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
