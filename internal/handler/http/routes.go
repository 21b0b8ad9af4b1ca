package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/health", h.checkHealth)
	router.Get("/api/version", h.getServerVersion)

	// routes without authorization, except rekey
	router.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/params", h.params)
		r.Post("/login", h.login)
		r.With(h.auth).Post("/rekey", h.rekey)
	})

	router.Route("/api/vault", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listItems)
		r.Post("/", h.createItem)
		r.Get("/{itemID}", h.getItem)
		r.Put("/{itemID}", h.updateItem)
		r.Delete("/{itemID}", h.deleteItem)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
