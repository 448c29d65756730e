package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)

	// liveness endpoints stay outside the rate limit
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/health", h.health)
		r.Get("/api/health", h.health)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)

		r.Post("/api/config/validate", h.validateConfig)
		r.Post("/api/config/save", h.saveConfig)
		r.Get("/api/config/history", h.configHistory)

		r.Get("/api/oss/sts", h.stsToken)
		r.Post("/api/oss/upload-batch", h.uploadBatch)
		r.Post("/api/oss/upload-complete", h.uploadComplete)

		r.Post("/api/huawei/update-config", h.updateConfig)
		r.Post("/api/huawei/update-config-both", h.updateConfigBoth)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeMessage(w, r, http.StatusNotFound, "route not found: "+r.Method+" "+r.URL.Path)
	})

	return router
}
