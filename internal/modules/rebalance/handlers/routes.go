package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all rebalancing routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rebalance", func(r chi.Router) {
		r.Get("/preview", h.HandlePreview)
		r.Post("/execute", h.HandleExecute)
	})
	r.Get("/margins", h.HandleMargins)
}
