package database_test

import (
	"context"
	"testing"

	"github.com/openplm/plmseed/internal/mockplm/database"
	"github.com/openplm/plmseed/internal/testhelpers"
)

func TestMigrationsCreateAllTables(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tables := []string{
		"schema_migrations",
		"accounts",
		"sessions",
		"workspaces",
		"workspace_users",
		"user_groups",
		"group_members",
		"folders",
		"tags",
		"milestones",
		"lovs",
		"document_templates",
		"documents",
		"document_iterations",
		"document_files",
		"part_templates",
		"parts",
		"part_iterations",
		"part_files",
		"conversions",
		"products",
		"path_to_path_links",
		"baselines",
		"product_instances",
		"product_configurations",
		"roles",
		"workflows",
		"change_items",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := database.Migrate(ctx, db); err != nil {
			t.Fatalf("migrate (run %d): %v", i+1, err)
		}
	}

	// Verify the latest version was recorded.
	var version int
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version)
	if err != nil {
		t.Fatalf("query version: %v", err)
	}
	if version != 5 {
		t.Errorf("version = %d, want 5", version)
	}
}

func TestMigrationsIndexes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", "idx_parts_number").Scan(&name)
	if err != nil {
		t.Errorf("index %q not found: %v", "idx_parts_number", err)
	}
}
