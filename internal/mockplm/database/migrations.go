package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: accounts, sessions and workspace membership
	{
		`CREATE TABLE accounts (
			login TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'en',
			timezone TEXT NOT NULL DEFAULT 'UTC',
			password TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			login TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (login) REFERENCES accounts(login)
		)`,

		`CREATE TABLE workspaces (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			admin_login TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE workspace_users (
			workspace_id TEXT NOT NULL,
			login TEXT NOT NULL,
			membership TEXT NOT NULL DEFAULT 'FULL_ACCESS',
			enabled BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (workspace_id, login),
			FOREIGN KEY (workspace_id) REFERENCES workspaces(id)
		)`,

		`CREATE TABLE user_groups (
			workspace_id TEXT NOT NULL,
			id TEXT NOT NULL,
			read_only BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (workspace_id, id),
			FOREIGN KEY (workspace_id) REFERENCES workspaces(id)
		)`,

		`CREATE TABLE group_members (
			workspace_id TEXT NOT NULL,
			group_id TEXT NOT NULL,
			login TEXT NOT NULL,
			PRIMARY KEY (workspace_id, group_id, login)
		)`,
	},

	// Migration 2: workspace content containers
	{
		`CREATE TABLE folders (
			workspace_id TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (workspace_id, name)
		)`,

		`CREATE TABLE tags (
			workspace_id TEXT NOT NULL,
			id TEXT NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (workspace_id, id)
		)`,

		`CREATE TABLE milestones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			acl TEXT
		)`,

		`CREATE TABLE lovs (
			workspace_id TEXT NOT NULL,
			name TEXT NOT NULL,
			item_list TEXT NOT NULL,
			PRIMARY KEY (workspace_id, name)
		)`,
	},

	// Migration 3: documents
	{
		`CREATE TABLE document_templates (
			workspace_id TEXT NOT NULL,
			reference TEXT NOT NULL,
			document_type TEXT NOT NULL DEFAULT '',
			mask TEXT NOT NULL DEFAULT '',
			id_generation BOOLEAN NOT NULL DEFAULT FALSE,
			attributes_locked BOOLEAN NOT NULL DEFAULT FALSE,
			attributes TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (workspace_id, reference)
		)`,

		`CREATE TABLE documents (
			workspace_id TEXT NOT NULL,
			id TEXT NOT NULL,
			version TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			folder TEXT NOT NULL DEFAULT '',
			template_id TEXT NOT NULL DEFAULT '',
			checked_out BOOLEAN NOT NULL DEFAULT FALSE,
			checkout_by TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			PRIMARY KEY (workspace_id, id, version)
		)`,

		`CREATE TABLE document_iterations (
			workspace_id TEXT NOT NULL,
			document_id TEXT NOT NULL,
			version TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			revision_note TEXT NOT NULL DEFAULT '',
			attributes TEXT NOT NULL DEFAULT '[]',
			links TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (workspace_id, document_id, version, iteration)
		)`,

		`CREATE TABLE document_files (
			workspace_id TEXT NOT NULL,
			document_id TEXT NOT NULL,
			version TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			name TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (workspace_id, document_id, version, iteration, name)
		)`,
	},

	// Migration 4: parts and conversions
	{
		`CREATE TABLE part_templates (
			workspace_id TEXT NOT NULL,
			reference TEXT NOT NULL,
			part_type TEXT NOT NULL DEFAULT '',
			mask TEXT NOT NULL DEFAULT '',
			id_generation BOOLEAN NOT NULL DEFAULT FALSE,
			attributes_locked BOOLEAN NOT NULL DEFAULT FALSE,
			attributes TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (workspace_id, reference)
		)`,

		`CREATE TABLE parts (
			workspace_id TEXT NOT NULL,
			number TEXT NOT NULL,
			version TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			standard_part BOOLEAN NOT NULL DEFAULT FALSE,
			template_id TEXT NOT NULL DEFAULT '',
			checked_out BOOLEAN NOT NULL DEFAULT FALSE,
			checkout_by TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			PRIMARY KEY (workspace_id, number, version)
		)`,
		`CREATE INDEX idx_parts_number ON parts(workspace_id, number)`,

		`CREATE TABLE part_iterations (
			workspace_id TEXT NOT NULL,
			number TEXT NOT NULL,
			version TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			attributes TEXT NOT NULL DEFAULT '[]',
			components TEXT NOT NULL DEFAULT '[]',
			links TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (workspace_id, number, version, iteration)
		)`,

		`CREATE TABLE part_files (
			workspace_id TEXT NOT NULL,
			number TEXT NOT NULL,
			version TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (workspace_id, number, version, iteration, name)
		)`,

		`CREATE TABLE conversions (
			workspace_id TEXT NOT NULL,
			number TEXT NOT NULL,
			version TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			status TEXT NOT NULL,
			polls INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (workspace_id, number, version, iteration)
		)`,
	},

	// Migration 5: products, workflows and changes
	{
		`CREATE TABLE products (
			workspace_id TEXT NOT NULL,
			id TEXT NOT NULL,
			design_item_number TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (workspace_id, id)
		)`,

		`CREATE TABLE path_to_path_links (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			source_path TEXT NOT NULL,
			target_path TEXT NOT NULL
		)`,

		`CREATE TABLE baselines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			optional_links TEXT NOT NULL DEFAULT '[]',
			path_links TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE TABLE product_instances (
			workspace_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			serial_number TEXT NOT NULL,
			baseline_id INTEGER NOT NULL,
			PRIMARY KEY (workspace_id, product_id, serial_number)
		)`,

		`CREATE TABLE product_configurations (
			workspace_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			optional_links TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (workspace_id, product_id, name)
		)`,

		`CREATE TABLE roles (
			workspace_id TEXT NOT NULL,
			name TEXT NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY (workspace_id, name)
		)`,

		`CREATE TABLE workflows (
			workspace_id TEXT NOT NULL,
			id TEXT NOT NULL,
			payload TEXT NOT NULL,
			acl TEXT,
			PRIMARY KEY (workspace_id, id)
		)`,

		`CREATE TABLE change_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			workspace_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
	},
}
