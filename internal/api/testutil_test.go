package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"movieweb/internal/api"
	"movieweb/internal/omdb"
	"movieweb/internal/store"
	"movieweb/internal/testutil"
)

// stubMetadata serves canned OMDb payloads keyed by title. Unknown titles
// get the provider's not-found answer, mirroring the real client.
type stubMetadata struct {
	payloads map[string]*omdb.Payload
	err      error
}

func (s *stubMetadata) Fetch(ctx context.Context, title string) (*omdb.Payload, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.payloads[title]
	if !ok {
		return nil, omdb.ErrTitleNotFound
	}
	return p, nil
}

// testEnv holds the router, real stores, and the metadata stub.
type testEnv struct {
	Router    http.Handler
	Users     *store.UserStore
	Movies    *store.MovieStore
	Favorites *store.FavoriteStore
	Metadata  *stubMetadata
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores and a stub fetcher.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	us := store.NewUserStore(db)
	ms := store.NewMovieStore(db)
	fs := store.NewFavoriteStore(db)
	meta := &stubMetadata{payloads: map[string]*omdb.Payload{
		"Pulp Fiction": {
			Title:      "Pulp Fiction",
			Year:       "1994",
			Director:   "Quentin Tarantino",
			Genre:      "Crime, Drama",
			Poster:     "https://example.com/pulp.jpg",
			ImdbID:     "tt0110912",
			ImdbRating: "8.9",
			Response:   "True",
		},
		"True Detective": {
			Title:      "True Detective",
			Year:       "2014–",
			Director:   "N/A",
			ImdbID:     "tt2356777",
			ImdbRating: "N/A",
			Response:   "True",
		},
	}}

	router := api.NewRouter(api.Deps{
		Users:     us,
		Movies:    ms,
		Favorites: fs,
		Metadata:  meta,
	})

	return &testEnv{Router: router, Users: us, Movies: ms, Favorites: fs, Metadata: meta}
}

// do performs a request against the router and decodes the JSON body into out
// when out is non-nil. Returns the response recorder for status checks.
func (env *testEnv) do(t *testing.T, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec
}

// seedUser creates a user directly through the store.
func seedUser(t *testing.T, env *testEnv, name string) *store.User {
	t.Helper()
	u, err := env.Users.Create(context.Background(), store.NewUser{Name: name})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
