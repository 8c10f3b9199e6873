package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"movieweb/internal/api"
	"movieweb/internal/omdb"
)

func TestUserCRUD(t *testing.T) {
	env := newTestEnv(t)

	// Create with an explicit id.
	var created api.UserResponse
	rec := env.do(t, http.MethodPost, "/api/v1/users", api.CreateUserRequest{ID: int64p(1), Name: "Alice"}, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body)
	}
	if created.ID != 1 || created.Name != "Alice" {
		t.Errorf("unexpected create response: %+v", created)
	}

	// Colliding id is a conflict.
	rec = env.do(t, http.MethodPost, "/api/v1/users", api.CreateUserRequest{ID: int64p(1), Name: "Imposter"}, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate id: status %d, want 409", rec.Code)
	}

	// Empty name is a validation failure.
	rec = env.do(t, http.MethodPost, "/api/v1/users", api.CreateUserRequest{Name: "  "}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty name: status %d, want 400", rec.Code)
	}

	var got api.UserResponse
	rec = env.do(t, http.MethodGet, "/api/v1/users/1", nil, &got)
	if rec.Code != http.StatusOK || got.Name != "Alice" {
		t.Errorf("get: status %d, body %+v", rec.Code, got)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/users/1", api.UpdateUserRequest{Name: "Alicia"}, &got)
	if rec.Code != http.StatusOK || got.Name != "Alicia" {
		t.Errorf("update: status %d, body %+v", rec.Code, got)
	}

	var list api.UserListResponse
	rec = env.do(t, http.MethodGet, "/api/v1/users", nil, &list)
	if rec.Code != http.StatusOK || len(list.Users) != 1 {
		t.Fatalf("list: status %d, %d users", rec.Code, len(list.Users))
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/users/1", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d, want 204", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/v1/users/1", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/api/v1/users/1", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", rec.Code)
	}
}

func TestUserGet_BadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/users/abc", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestAddMovie_FetchNormalizeAndLink(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Alice")

	var resp api.AddFavoriteResponse
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{Title: "Pulp Fiction"}, &resp)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status %d, body %s", rec.Code, rec.Body)
	}
	if !resp.Created {
		t.Error("expected created=true on first add")
	}
	if resp.Movie.ID != "tt0110912" || resp.Movie.Year != 1994 || resp.Movie.Rating != 8.9 {
		t.Errorf("unexpected movie: %+v", resp.Movie)
	}

	var list api.MovieListResponse
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), nil, &list)
	if rec.Code != http.StatusOK || len(list.Movies) != 1 {
		t.Fatalf("list: status %d, %d movies", rec.Code, len(list.Movies))
	}
	if list.Movies[0].Name != "Pulp Fiction" {
		t.Errorf("favorite = %+v", list.Movies[0])
	}
}

func TestAddMovie_SecondUserSharesRow(t *testing.T) {
	env := newTestEnv(t)
	alice := seedUser(t, env, "Alice")
	bob := seedUser(t, env, "Bob")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", alice.ID), api.AddFavoriteRequest{Title: "Pulp Fiction"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add: status %d", rec.Code)
	}

	var resp api.AddFavoriteResponse
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", bob.ID), api.AddFavoriteRequest{Title: "Pulp Fiction"}, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: status %d, want 200", rec.Code)
	}
	if resp.Created {
		t.Error("expected created=false when the movie row already exists")
	}

	// Both users point at the one row.
	for _, u := range []int64{alice.ID, bob.ID} {
		movies, err := env.Favorites.ListMovies(context.Background(), u)
		if err != nil || len(movies) != 1 {
			t.Errorf("user %d: movies=%d err=%v", u, len(movies), err)
		}
	}
}

func TestAddMovie_NormalizesProviderQuirks(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Alice")

	var resp api.AddFavoriteResponse
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{Title: "True Detective"}, &resp)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status %d, body %s", rec.Code, rec.Body)
	}
	if resp.Movie.Year != 2014 {
		t.Errorf("year = %d, want 2014 from %q", resp.Movie.Year, "2014–")
	}
	if resp.Movie.Rating != 0 {
		t.Errorf("rating = %v, want 0 from N/A", resp.Movie.Rating)
	}
}

func TestAddMovie_Failures(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Alice")

	// Unknown title: provider not-found.
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{Title: "no such film"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown title: status %d, want 404", rec.Code)
	}

	// Missing title field.
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty title: status %d, want 400", rec.Code)
	}

	// Unknown user: movie row is created, link fails.
	rec = env.do(t, http.MethodPost, "/api/v1/users/999/movies", api.AddFavoriteRequest{Title: "Pulp Fiction"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: status %d, want 404", rec.Code)
	}

	// Provider down: bad gateway.
	env.Metadata.err = omdb.ErrUpstream
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{Title: "Pulp Fiction"}, nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("provider down: status %d, want 502", rec.Code)
	}
}

func TestRemoveMovie(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Alice")

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/movies", u.ID), api.AddFavoriteRequest{Title: "Pulp Fiction"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/movies/tt0110912", u.ID), nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("remove: status %d, want 204", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/movies/tt0110912", u.ID), nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second remove: status %d, want 404", rec.Code)
	}

	// The movie row survives the unfavorite.
	rec = env.do(t, http.MethodGet, "/api/v1/movies/tt0110912", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("movie after unfavorite: status %d, want 200", rec.Code)
	}
}

func int64p(v int64) *int64 { return &v }
