// Package session persists the CLI login (email and bearer token) in a local
// SQLite database so consecutive commands share it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/feedbackhub/internal/client/migrations"
	"github.com/dmitrijs2005/feedbackhub/internal/client/repositories/metadata"
)

const (
	keyToken = "token"
	keyEmail = "email"
)

var ErrNotLoggedIn = errors.New("not logged in, run `feedbackctl login` first")

type Store struct {
	db   *sql.DB
	meta metadata.Repository
}

// Open creates the state file (and its directory) if needed and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate state db: %w", err)
	}

	return &Store{db: db, meta: metadata.NewSQLiteRepository(db)}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) SaveLogin(ctx context.Context, email, token string) error {
	if err := s.meta.Set(ctx, keyEmail, []byte(email)); err != nil {
		return err
	}
	return s.meta.Set(ctx, keyToken, []byte(token))
}

// Token returns ErrNotLoggedIn when no token has been saved.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNotLoggedIn
	}
	return string(v), nil
}

func (s *Store) Email(ctx context.Context) (string, error) {
	v, err := s.meta.Get(ctx, keyEmail)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Logout drops the token and keeps the remembered email.
func (s *Store) Logout(ctx context.Context) error {
	return s.meta.Delete(ctx, keyToken)
}

// Clear forgets everything stored in the state file.
func (s *Store) Clear(ctx context.Context) error {
	return s.meta.Clear(ctx)
}

type Status struct {
	Email    string `json:"email,omitempty"`
	LoggedIn bool   `json:"logged_in"`
}

func (s *Store) Status(ctx context.Context) (Status, error) {
	all, err := s.meta.List(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Email:    string(all[keyEmail]),
		LoggedIn: len(all[keyToken]) > 0,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
