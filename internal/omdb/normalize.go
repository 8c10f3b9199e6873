package omdb

import (
	"fmt"
	"regexp"
	"strconv"

	"movieweb/internal/store"
)

var (
	// Year strings from the provider can carry trailing qualifiers,
	// e.g. "2014–" for a series range. Only a leading 4-digit run counts.
	yearRe = regexp.MustCompile(`^(\d{4})`)

	// Ratings are parsed only when purely numeric: digits with at most one
	// decimal point. The provider's "N/A" sentinel falls through to 0.0.
	ratingRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Normalize converts a raw provider payload into a movie record. Pure
// function, no I/O. Malformed numeric fields default to zero values rather
// than failing; a payload that carries the provider's error marker is
// propagated as an error unchanged.
//
// The returned record may have an empty ID when the provider omitted the
// identifier; callers must reject that before persisting since the id is
// the primary key.
func Normalize(p *Payload) (store.Movie, error) {
	if p.Error != "" {
		return store.Movie{}, fmt.Errorf("%w: %s", ErrTitleNotFound, p.Error)
	}

	return store.Movie{
		ID:       p.ImdbID,
		Name:     stringOr(p.Title, "N/A"),
		Director: stringOr(p.Director, "N/A"),
		Year:     parseYear(p.Year),
		Rating:   parseRating(p.ImdbRating),
		Genre:    stringOr(p.Genre, "N/A"),
		Poster:   p.Poster,
	}, nil
}

func parseYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

func parseRating(s string) float64 {
	if !ratingRe.MatchString(s) {
		return 0
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return rating
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
