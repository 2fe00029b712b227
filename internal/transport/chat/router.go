package chat

import (
	"context"
	"net/http"
	"time"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"
	"craft-assistant/internal/stats"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const runningStatus = "✅ Craft assistant is running!"

// Resolver answers one customer message.
type Resolver interface {
	Resolve(ctx context.Context, text string) *models.ResolutionResult
}

// StatsReader exposes the resolver counters.
type StatsReader interface {
	Counts(ctx context.Context) (*stats.Snapshot, error)
}

// ReadinessCheck is one dependency probed by GET /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type RouterConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
	Checks         []ReadinessCheck
	Stats          StatsReader
}

// LoadRouterConfig reads the server section. Checks and Stats are wired by
// the caller.
func LoadRouterConfig(cfg config.ServerConfig) RouterConfig {
	return RouterConfig{
		RequestTimeout: config.GetDuration(cfg.RequestTimeout),
		AllowedOrigins: cfg.CorsAllowedOrigins,
	}
}

// NewRouter creates the HTTP API.
func NewRouter(resolver Resolver, cfg RouterConfig, log logger.Logger) http.Handler {
	log = log.With(map[string]interface{}{"component": "http"})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg.AllowedOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": runningStatus})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/ready", readyHandler(cfg.Checks, log))
	r.Handle("/metrics", promhttp.Handler())

	chatHandler := NewHandler(resolver, log)
	r.Post("/chat", chatHandler.Chat)

	statsHandler := NewStatsHandler(cfg.Stats, log)
	r.Get("/stats", statsHandler.Get)

	return r
}

func readyHandler(checks []ReadinessCheck, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				failed[c.Name] = err.Error()
				log.Warn("readiness check failed", map[string]interface{}{
					"check": c.Name,
					"error": err.Error(),
				})
			}
		}

		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"failed": failed,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
