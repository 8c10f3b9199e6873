package store

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an insert collides with an existing
	// primary key and idempotency is not the intended policy.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserStoreIface exposes all user data operations. Handlers never query the
// database directly; all access goes through these interfaces.
type UserStoreIface interface {
	List(ctx context.Context) ([]*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, nu NewUser) (*User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// MovieStoreIface exposes all movie data operations.
type MovieStoreIface interface {
	Get(ctx context.Context, id string) (*Movie, error)
	Create(ctx context.Context, m Movie) (*Movie, bool, error)
	Update(ctx context.Context, id string, patch MoviePatch) (*Movie, error)
	Delete(ctx context.Context, id string) error
}

// FavoriteStoreIface exposes the user<->movie relationship operations.
type FavoriteStoreIface interface {
	Add(ctx context.Context, userID int64, movieID string) error
	Remove(ctx context.Context, userID int64, movieID string) error
	ListMovies(ctx context.Context, userID int64) ([]*Movie, error)
	Count(ctx context.Context, userID int64) (int, error)
}

// isUniqueConstraintError checks whether err indicates a unique constraint
// violation. Works across SQLite, PostgreSQL, and MySQL.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
