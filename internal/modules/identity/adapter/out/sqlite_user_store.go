package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindful/internal/modules/identity/domain"
	identityout "mindful/internal/modules/identity/port/out"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/sqlitedb"
)

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore applies its schema to db. The caller owns db and closes it.
func NewSQLiteUserStore(ctx context.Context, db *sql.DB) (*SQLiteUserStore, error) {
	if err := sqlitedb.Apply(ctx, db, usersDDL); err != nil {
		return nil, fmt.Errorf("init user store: %w", err)
	}
	return &SQLiteUserStore{db: db}, nil
}

var _ identityout.UserStore = (*SQLiteUserStore)(nil)

func (s *SQLiteUserStore) Create(ctx context.Context, user domain.User) error {
	const stmt = `
INSERT INTO users (id, email, full_name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.CreatedAt.UTC().Format(sqlitedb.Timestamp),
		user.UpdatedAt.UTC().Format(sqlitedb.Timestamp),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, `SELECT id, email, full_name, password_hash, created_at, updated_at FROM users WHERE email = ?;`, email)
}

func (s *SQLiteUserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	return s.findOne(ctx, `SELECT id, email, full_name, password_hash, created_at, updated_at FROM users WHERE id = ?;`, id)
}

func (s *SQLiteUserStore) findOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var (
		user             domain.User
		created, updated string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperrors.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("query user: %w", err)
	}
	if user.CreatedAt, err = time.Parse(sqlitedb.Timestamp, created); err != nil {
		return domain.User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(sqlitedb.Timestamp, updated); err != nil {
		return domain.User{}, fmt.Errorf("parse user updated_at: %w", err)
	}
	return user, nil
}

// Delete removes a user row. Only administrative tooling and tests use it.
func (s *SQLiteUserStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
