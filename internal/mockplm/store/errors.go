package store

import "errors"

// Sentinel errors mapped by handlers onto HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrCheckedOut    = errors.New("already checked out")
	ErrNotCheckedOut = errors.New("not checked out")
	ErrBadCredential = errors.New("bad credentials")
)
