package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tg_guarantor/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone: только чтение
			r.Route("/deals", func(r chi.Router) {
				r.Get("/{id}", handler(s.getV1Deal))
			})
			r.Route("/sellers", func(r chi.Router) {
				r.Get("/{id}/stats", handler(s.getV1SellerStats))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
