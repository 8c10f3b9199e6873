package api

// Request and response DTOs for the JSON API. Persistence types never cross
// the HTTP boundary directly; required vs. optional fields are enforced
// here, not deep inside the store.

type CreateUserRequest struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

type UserResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FavoriteCount int    `json:"favorite_count"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
}

type MovieResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Genre    string  `json:"genre,omitempty"`
	Poster   string  `json:"poster,omitempty"`
}

type MovieListResponse struct {
	Movies []*MovieResponse `json:"movies"`
}

// AddFavoriteRequest names the title to look up on OMDb and link to a user.
type AddFavoriteRequest struct {
	Title string `json:"title"`
}

// AddFavoriteResponse reports the stored movie and whether this request
// created the row or found it already present.
type AddFavoriteResponse struct {
	Movie   *MovieResponse `json:"movie"`
	Created bool           `json:"created"`
}

// UpdateMovieRequest carries field overrides. Year and rating arrive as
// strings the way a form submits them; values that do not parse leave the
// stored field unchanged instead of failing the whole update.
type UpdateMovieRequest struct {
	Name     *string `json:"name,omitempty"`
	Director *string `json:"director,omitempty"`
	Year     *string `json:"year,omitempty"`
	Rating   *string `json:"rating,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	Poster   *string `json:"poster,omitempty"`
}
