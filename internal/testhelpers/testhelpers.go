// Package testhelpers provides shared fixtures for package tests: an
// in-memory migrated database and an in-process mock PLM server.
package testhelpers

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/mockplm"
	"github.com/openplm/plmseed/internal/mockplm/database"
	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// the mock server's. The database is automatically closed when the test
// completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewMigratedTestDB returns an in-memory database with all migrations
// applied.
func NewMigratedTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewTestServer starts an in-process mock PLM server backed by an in-memory
// database and returns its base URL. The server stops when the test
// completes.
func NewTestServer(t *testing.T) string {
	t.Helper()

	db := NewMigratedTestDB(t)
	srv := httptest.NewServer(mockplm.NewHandler(store.New(db)))
	t.Cleanup(srv.Close)
	return srv.URL
}

// LoginTestClient registers an account on the test server and returns a
// client authenticated as it.
func LoginTestClient(t *testing.T, baseURL, login string) *client.Client {
	t.Helper()

	c := client.New(baseURL)
	err := c.CreateAccount(context.Background(), plm.Account{
		Login:    login,
		Name:     login,
		Email:    login + "@example.com",
		Language: "en",
		TimeZone: "UTC",
		Password: "password",
	})
	if err != nil && !client.IsConflict(err) {
		t.Fatalf("create account %s: %v", login, err)
	}

	if err := c.Authenticate(context.Background(), login, "password"); err != nil {
		t.Fatalf("login as %s: %v", login, err)
	}
	return c
}
