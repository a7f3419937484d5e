package rag

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers pipeline routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/splitandembed", h.SplitAndEmbed)
		r.Post("/retrieveandquery", h.RetrieveAndQuery)

		r.Route("/indexes/{index_id}", func(r chi.Router) {
			r.Get("/", h.GetIndex)
			r.Delete("/", h.DeleteIndex)
		})
	})
}
