package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
	"github.com/openplm/plmseed/internal/testhelpers"
)

var _ store.AccountStore = (*store.SQLiteAccountStore)(nil)

func TestAccountAuthenticate(t *testing.T) {
	db := testhelpers.NewMigratedTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	err := s.Accounts.Create(ctx, plm.Account{Login: "rob", Name: "rob", Password: "password"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	token, err := s.Accounts.Authenticate(ctx, "rob", "password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	login, err := s.Accounts.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if login != "rob" {
		t.Errorf("login = %q, want %q", login, "rob")
	}
}

func TestAccountAuthenticateBadPassword(t *testing.T) {
	db := testhelpers.NewMigratedTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	err := s.Accounts.Create(ctx, plm.Account{Login: "rob", Name: "rob", Password: "password"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = s.Accounts.Authenticate(ctx, "rob", "wrong")
	if !errors.Is(err, store.ErrBadCredential) {
		t.Errorf("error = %v, want ErrBadCredential", err)
	}
}

func TestAccountDuplicateConflict(t *testing.T) {
	db := testhelpers.NewMigratedTestDB(t)
	s := store.New(db)
	ctx := context.Background()

	account := plm.Account{Login: "rob", Name: "rob", Password: "password"}
	if err := s.Accounts.Create(ctx, account); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Accounts.Create(ctx, account)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	db := testhelpers.NewMigratedTestDB(t)
	s := store.New(db)

	_, err := s.Accounts.ValidateToken(context.Background(), "no-such-token")
	if !errors.Is(err, store.ErrBadCredential) {
		t.Errorf("error = %v, want ErrBadCredential", err)
	}
}
