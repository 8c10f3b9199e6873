package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"movieweb/internal/omdb"
	"movieweb/internal/store"
)

// MetadataSource is the outbound movie-lookup dependency. *omdb.Client
// satisfies it; tests substitute a stub.
type MetadataSource interface {
	Fetch(ctx context.Context, title string) (*omdb.Payload, error)
}

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Users     store.UserStoreIface
	Movies    store.MovieStoreIface
	Favorites store.FavoriteStoreIface
	Metadata  MetadataSource
}

// NewRouter creates the chi router for /api/v1. All routes return
// application/json.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(jsonContentType)

	r.Route("/api/v1", func(r chi.Router) {
		registerUserRoutes(r, deps)
		registerMovieRoutes(r, deps)
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
