package store

import "database/sql"

// Store holds all sub-stores used by the mock server.
type Store struct {
	DB         *sql.DB
	Accounts   AccountStore
	Workspaces WorkspaceStore
	LOVs       LOVStore
	Documents  DocumentStore
	Parts      PartStore
	Products   ProductStore
	Workflows  WorkflowStore
	Changes    ChangeStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:         db,
		Accounts:   NewSQLiteAccountStore(db),
		Workspaces: NewSQLiteWorkspaceStore(db),
		LOVs:       NewSQLiteLOVStore(db),
		Documents:  NewSQLiteDocumentStore(db),
		Parts:      NewSQLitePartStore(db),
		Products:   NewSQLiteProductStore(db),
		Workflows:  NewSQLiteWorkflowStore(db),
		Changes:    NewSQLiteChangeStore(db),
	}
}
