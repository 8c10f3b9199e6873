package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movieweb/internal/store"
)

// moviesAPIHandler provides REST handlers for movie records.
type moviesAPIHandler struct {
	movies store.MovieStoreIface
}

func registerMovieRoutes(r chi.Router, deps Deps) {
	h := &moviesAPIHandler{movies: deps.Movies}
	r.Get("/movies/{id}", h.Get)
	r.Put("/movies/{id}", h.Update)
	r.Delete("/movies/{id}", h.Delete)
}

func toMovieResponse(m *store.Movie) *MovieResponse {
	return &MovieResponse{
		ID:       m.ID,
		Name:     m.Name,
		Director: m.Director,
		Year:     m.Year,
		Rating:   m.Rating,
		Genre:    m.Genre,
		Poster:   m.Poster,
	}
}

// Get returns one movie.
// GET /api/v1/movies/{id}
func (h *moviesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovieResponse(m))
}

// Update patches movie fields. Numeric overrides that do not parse keep the
// stored value instead of failing the update; a human fixing one field
// should not lose the edit because another field was left garbled.
// PUT /api/v1/movies/{id}
func (h *moviesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	patch := store.MoviePatch{
		Name:     req.Name,
		Director: req.Director,
		Genre:    req.Genre,
		Poster:   req.Poster,
	}
	if req.Year != nil {
		if year, err := strconv.Atoi(*req.Year); err == nil {
			patch.Year = &year
		}
	}
	if req.Rating != nil {
		if rating, err := strconv.ParseFloat(*req.Rating, 64); err == nil {
			patch.Rating = &rating
		}
	}

	m, err := h.movies.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovieResponse(m))
}

// Delete hard-deletes a movie. Favorite links referencing it are removed in
// the same transaction by the store.
// DELETE /api/v1/movies/{id}
func (h *moviesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.movies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
