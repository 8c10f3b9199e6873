package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// User is an application profile. Movies are linked through the user_movie
// association table, not embedded here.
type User struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// NewUser is the input for UserStore.Create. ID is optional: when nil the
// database assigns the next identifier.
type NewUser struct {
	ID   *int64
	Name string
}

// UserPatch holds the fields of an update; nil fields are left untouched.
type UserPatch struct {
	Name *string
}

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// List returns all users ordered by id.
func (s *UserStore) List(ctx context.Context) ([]*User, error) {
	users := []*User{}
	err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns the user with the given id, or ErrNotFound.
func (s *UserStore) Get(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. A caller-supplied id that collides with an
// existing row returns ErrDuplicateKey; without an id the database
// auto-increment assigns one, so concurrent creators never race on
// max(id)+1 scans.
//
// TODO: LastInsertId works for SQLite and MySQL but not PostgreSQL, which
// needs INSERT ... RETURNING id. Add a driver-specific path when a postgres
// deployment shows up.
func (s *UserStore) Create(ctx context.Context, nu NewUser) (*User, error) {
	name, err := ValidateName(nu.Name)
	if err != nil {
		return nil, err
	}

	if nu.ID != nil {
		_, err := s.db.ExecContext(ctx, `INSERT INTO users (id, name) VALUES (?, ?)`, *nu.ID, name)
		if err != nil {
			if isUniqueConstraintError(err) {
				return nil, ErrDuplicateKey
			}
			return nil, err
		}
		return s.Get(ctx, *nu.ID)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (name) VALUES (?)`, name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update overwrites only the provided fields and returns the updated record.
// Returns ErrNotFound if the user does not exist.
func (s *UserStore) Update(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var u User
	err = tx.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
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
		u.Name = name
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, u.Name, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the user and all of its favorite-join rows. Returns
// ErrNotFound if the user does not exist. The join rows are deleted
// explicitly rather than relying on FK cascade so the behavior is the same
// on engines where foreign key enforcement is off.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_movie WHERE user_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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
