package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"movieweb/internal/omdb"
	"movieweb/internal/store"
)

// usersAPIHandler provides REST handlers for the user roster and each
// user's favorite movies.
type usersAPIHandler struct {
	users     store.UserStoreIface
	movies    store.MovieStoreIface
	favorites store.FavoriteStoreIface
	metadata  MetadataSource
}

func registerUserRoutes(r chi.Router, deps Deps) {
	h := &usersAPIHandler{
		users:     deps.Users,
		movies:    deps.Movies,
		favorites: deps.Favorites,
		metadata:  deps.Metadata,
	}
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	r.Put("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
	r.Get("/users/{id}/movies", h.ListMovies)
	r.Post("/users/{id}/movies", h.AddMovie)
	r.Delete("/users/{id}/movies/{movieID}", h.RemoveMovie)
}

func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// List returns all users with their favorite counts.
// GET /api/v1/users
func (h *usersAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := &UserListResponse{Users: make([]*UserResponse, 0, len(users))}
	for _, u := range users {
		count, err := h.favorites.Count(r.Context(), u.ID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		resp.Users = append(resp.Users, &UserResponse{ID: u.ID, Name: u.Name, FavoriteCount: count})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create adds a user to the roster.
// POST /api/v1/users
func (h *usersAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	u, err := h.users.Create(r.Context(), store.NewUser{ID: req.ID, Name: req.Name})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &UserResponse{ID: u.ID, Name: u.Name})
}

// Get returns one user.
// GET /api/v1/users/{id}
func (h *usersAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	count, err := h.favorites.Count(r.Context(), u.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &UserResponse{ID: u.ID, Name: u.Name, FavoriteCount: count})
}

// Update renames a user.
// PUT /api/v1/users/{id}
func (h *usersAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	u, err := h.users.Update(r.Context(), id, store.UserPatch{Name: &req.Name})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &UserResponse{ID: u.ID, Name: u.Name})
}

// Delete removes a user and their favorite links.
// DELETE /api/v1/users/{id}
func (h *usersAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMovies returns a user's favorite movies. An unknown user yields an
// empty list, matching the read-only nature of the view.
// GET /api/v1/users/{id}/movies
func (h *usersAPIHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	movies, err := h.favorites.ListMovies(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := &MovieListResponse{Movies: make([]*MovieResponse, 0, len(movies))}
	for _, m := range movies {
		resp.Movies = append(resp.Movies, toMovieResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddMovie looks the title up on OMDb, stores the movie if it is new, and
// links it to the user. Both steps are idempotent, so two users adding the
// same title share one movie row.
// POST /api/v1/users/{id}/movies
func (h *usersAPIHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", "VALIDATION_ERROR")
		return
	}

	payload, err := h.metadata.Fetch(r.Context(), req.Title)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rec, err := omdb.Normalize(payload)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if rec.ID == "" {
		writeError(w, http.StatusBadRequest, "provider returned no movie id", "VALIDATION_ERROR")
		return
	}

	movie, created, err := h.movies.Create(r.Context(), rec)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if err := h.favorites.Add(r.Context(), id, movie.ID); err != nil {
		writeStoreError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, &AddFavoriteResponse{Movie: toMovieResponse(movie), Created: created})
}

// RemoveMovie unlinks a movie from a user's favorites. The movie row itself
// stays; other users may still reference it.
// DELETE /api/v1/users/{id}/movies/{movieID}
func (h *usersAPIHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "user id must be an integer", "BAD_REQUEST")
		return
	}

	if err := h.favorites.Remove(r.Context(), id, chi.URLParam(r, "movieID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
