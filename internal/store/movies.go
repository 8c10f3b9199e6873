package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Movie holds metadata fetched from the OMDb provider. The id is the
// provider's identifier (e.g. "tt0110912") and is the primary key so the
// same title favorited by two users maps to one row.
type Movie struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Director string  `db:"director"`
	Year     int     `db:"year"`
	Rating   float64 `db:"rating"`
	Genre    string  `db:"genre"`
	Poster   string  `db:"poster"`
}

// MoviePatch holds the fields of an update; nil fields are left untouched.
type MoviePatch struct {
	Name     *string
	Director *string
	Year     *int
	Rating   *float64
	Genre    *string
	Poster   *string
}

type MovieStore struct {
	db *sqlx.DB
}

func NewMovieStore(db *sqlx.DB) *MovieStore {
	return &MovieStore{db: db}
}

// Get returns the movie with the given id, or ErrNotFound.
func (s *MovieStore) Get(ctx context.Context, id string) (*Movie, error) {
	var m Movie
	err := s.db.GetContext(ctx, &m, `SELECT * FROM movies WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie. The insert is idempotent: if a row with the same
// id already exists the stored record is returned with created=false and
// nothing is overwritten. Two users independently adding the same title is
// the normal case, not an error.
func (s *MovieStore) Create(ctx context.Context, m Movie) (*Movie, bool, error) {
	if err := ValidateMovie(&m); err != nil {
		return nil, false, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (id, name, director, year, rating, genre, poster)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Director, m.Year, m.Rating, m.Genre, m.Poster)
	if err != nil {
		if isUniqueConstraintError(err) {
			existing, gerr := s.Get(ctx, m.ID)
			if gerr != nil {
				return nil, false, gerr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &m, true, nil
}

// Update overwrites only the provided fields and returns the updated record.
// Returns ErrNotFound if the movie does not exist.
func (s *MovieStore) Update(ctx context.Context, id string, patch MoviePatch) (*Movie, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var m Movie
	err = tx.GetContext(ctx, &m, `SELECT * FROM movies WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := ValidateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		m.Name = name
	}
	if patch.Director != nil {
		m.Director = *patch.Director
	}
	if patch.Year != nil {
		m.Year = *patch.Year
	}
	if patch.Rating != nil {
		if err := ValidateRating(*patch.Rating); err != nil {
			return nil, err
		}
		m.Rating = *patch.Rating
	}
	if patch.Genre != nil {
		m.Genre = *patch.Genre
	}
	if patch.Poster != nil {
		m.Poster = *patch.Poster
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE movies SET name = ?, director = ?, year = ?, rating = ?, genre = ?, poster = ?
		WHERE id = ?
	`, m.Name, m.Director, m.Year, m.Rating, m.Genre, m.Poster, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes the movie and any favorite-join rows that reference it.
// Returns ErrNotFound if the movie does not exist. Join rows are removed in
// the same transaction so no user is left pointing at a missing movie.
func (s *MovieStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_movie WHERE movie_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
