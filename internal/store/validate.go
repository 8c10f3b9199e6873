package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNameRequired is returned when a user or movie name is empty after trimming.
	ErrNameRequired = errors.New("name is required")

	// ErrMovieIDRequired is returned when a movie is submitted without an
	// external identifier. The id is the primary key, so an empty id can
	// never be persisted.
	ErrMovieIDRequired = errors.New("movie id is required")

	// ErrMovieIDInvalid is returned when a movie id does not look like a
	// provider identifier (alphanumeric, e.g. "tt0110912").
	ErrMovieIDInvalid = errors.New("movie id must be alphanumeric")

	// ErrRatingOutOfRange is returned when a rating falls outside the 0-10 scale.
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 10")

	movieIDRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ValidateName checks that a user or movie name is non-empty after trimming
// and returns the trimmed value.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

// ValidateMovie checks the required movie fields before an insert. It does
// NOT check id uniqueness — that is handled by the primary key on movies.id.
func ValidateMovie(m *Movie) error {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		return ErrMovieIDRequired
	}
	if !movieIDRe.MatchString(m.ID) {
		return fmt.Errorf("%w: %q", ErrMovieIDInvalid, m.ID)
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return ErrNameRequired
	}
	return ValidateRating(m.Rating)
}

// ValidateRating checks that rating is within the provider's 0-10 scale.
func ValidateRating(rating float64) error {
	if rating < 0 || rating > 10 {
		return fmt.Errorf("%w: got %.1f", ErrRatingOutOfRange, rating)
	}
	return nil
}
