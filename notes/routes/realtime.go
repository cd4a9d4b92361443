package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RealtimeRoutes exposes the websocket subscription endpoint. It must be
// mounted outside any request timeout middleware.
func RealtimeRoutes(hub http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", hub.ServeHTTP)
	return r
}
