package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

type RouterConfig struct {
	ServiceName string
	JSONLogs    bool
	// AccessLog disables httplog when false. Tests turn it off.
	AccessLog bool
}

func NewRouter(cfg RouterConfig, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		logger := httplog.NewLogger(cfg.ServiceName, httplog.Options{
			JSON:    cfg.JSONLogs,
			Concise: true,
		})
		r.Use(httplog.RequestLogger(logger))
	}
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Get("/tasks", h.Tasks)
		r.Get("/tasks/{id}", h.Task)
		r.Get("/messages", h.Messages)
		r.Get("/health", h.Health)
	})

	return r
}
