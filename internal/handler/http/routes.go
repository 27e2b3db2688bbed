package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// a manual session is bounded by the session timeout instead
		r.With(h.withProviderID).Post("/api/providers/{id}/sync", h.syncProvider)

		r.Group(func(r chi.Router) {
			if h.requestTimeout > 0 {
				r.Use(middleware.Timeout(h.requestTimeout))
			}

			r.Get("/api/providers", h.listProviders)
			r.Post("/api/providers", h.addProvider)
			r.With(h.withProviderID).Get("/api/providers/{id}", h.getProvider)
			r.With(h.withProviderID).Delete("/api/providers/{id}", h.removeProvider)
			r.With(h.withProviderID).Put("/api/providers/{id}/frequency", h.setSyncFrequency)
			r.With(h.withProviderID).Get("/api/providers/{id}/files", h.listFiles)
			r.Get("/api/logs", h.listLogs)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
