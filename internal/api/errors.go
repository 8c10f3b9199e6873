package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"movieweb/internal/omdb"
	"movieweb/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps store and provider errors onto HTTP responses. The
// handlers own all user-facing wording; store errors never leak SQL detail.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	case errors.Is(err, store.ErrDuplicateKey):
		writeError(w, http.StatusConflict, "id already in use", "DUPLICATE_KEY")
	case errors.Is(err, store.ErrNameRequired),
		errors.Is(err, store.ErrMovieIDRequired),
		errors.Is(err, store.ErrMovieIDInvalid),
		errors.Is(err, store.ErrRatingOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, omdb.ErrTitleNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "TITLE_NOT_FOUND")
	case errors.Is(err, omdb.ErrMissingAPIKey):
		writeError(w, http.StatusBadGateway, "metadata provider not configured", "UPSTREAM_UNAVAILABLE")
	case errors.Is(err, omdb.ErrUpstream):
		writeError(w, http.StatusBadGateway, "metadata provider unavailable", "UPSTREAM_UNAVAILABLE")
	default:
		log.Printf("storage error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
