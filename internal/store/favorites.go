package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FavoriteStore manages user_movie relationships.
type FavoriteStore struct {
	db *sqlx.DB
}

func NewFavoriteStore(db *sqlx.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add links movieID to userID's favorites. Both endpoints must already
// exist; a missing user or movie returns ErrNotFound without saying which
// side was absent. Adding an existing pair is a no-op, not an error. The
// existence checks and the insert run in one transaction.
func (s *FavoriteStore) Add(ctx context.Context, userID int64, movieID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE id = ?`, userID); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM movies WHERE id = ?`, movieID); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_movie WHERE user_id = ? AND movie_id = ?`, userID, movieID); err != nil {
		return err
	}
	if n > 0 {
		// Pair already present; nothing to do.
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO user_movie (user_id, movie_id) VALUES (?, ?)`, userID, movieID); err != nil {
		// A concurrent caller may have inserted the same pair between the
		// check and the insert; the composite primary key makes that a no-op.
		if isUniqueConstraintError(err) {
			return tx.Commit()
		}
		return err
	}
	return tx.Commit()
}

// Remove unlinks movieID from userID's favorites. Returns ErrNotFound if
// the pair does not exist.
func (s *FavoriteStore) Remove(ctx context.Context, userID int64, movieID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_movie WHERE user_id = ? AND movie_id = ?`, userID, movieID)
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
	return nil
}

// ListMovies returns the favorite movies of userID ordered by title. A
// missing user or an empty list both yield an empty slice; listing is
// deliberately lenient since it backs a read-only view.
func (s *FavoriteStore) ListMovies(ctx context.Context, userID int64) ([]*Movie, error) {
	movies := []*Movie{}
	err := s.db.SelectContext(ctx, &movies, `
		SELECT m.* FROM movies m
		INNER JOIN user_movie um ON um.movie_id = m.id
		WHERE um.user_id = ?
		ORDER BY m.name ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Count returns the number of favorites userID has.
func (s *FavoriteStore) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM user_movie WHERE user_id = ?`, userID)
	return n, err
}
