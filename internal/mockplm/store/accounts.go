package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openplm/plmseed/internal/plm"
)

// AccountStore defines operations for server accounts and login sessions.
type AccountStore interface {
	Create(ctx context.Context, account plm.Account) error
	Authenticate(ctx context.Context, login, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

// SQLiteAccountStore implements AccountStore backed by SQLite.
type SQLiteAccountStore struct {
	db *sql.DB
}

// NewSQLiteAccountStore creates a new SQLiteAccountStore.
func NewSQLiteAccountStore(db *sql.DB) *SQLiteAccountStore {
	return &SQLiteAccountStore{db: db}
}

// Create registers a new account. An existing login is a conflict.
func (s *SQLiteAccountStore) Create(ctx context.Context, account plm.Account) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE login = ?`, account.Login,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("account %q: %w", account.Login, ErrConflict)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (login, name, email, language, timezone, password, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		account.Login, account.Name, account.Email, account.Language, account.TimeZone,
		account.Password, now(),
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Authenticate verifies the credentials and opens a new session, returning
// its bearer token.
func (s *SQLiteAccountStore) Authenticate(ctx context.Context, login, password string) (string, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT password FROM accounts WHERE login = ?`, login,
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBadCredential
		}
		return "", fmt.Errorf("look up account: %w", err)
	}
	if stored != password {
		return "", ErrBadCredential
	}

	token := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, login, created_at) VALUES (?, ?, ?)`,
		token, login, now(),
	); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// ValidateToken resolves a session token to its login.
func (s *SQLiteAccountStore) ValidateToken(ctx context.Context, token string) (string, error) {
	var login string
	err := s.db.QueryRowContext(ctx,
		`SELECT login FROM sessions WHERE token = ?`, token,
	).Scan(&login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBadCredential
		}
		return "", fmt.Errorf("look up session: %w", err)
	}
	return login, nil
}
