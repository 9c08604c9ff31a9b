package db

// SchemaSQL is the complete schema for fresh curator installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests
// use it via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
// Keep it in sync with the migrations list in migrations.go.
const SchemaSQL = `
-- Project signatures (attribution reference data, loaded at startup)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	client_id TEXT NOT NULL DEFAULT '',
	platform_id TEXT NOT NULL DEFAULT '',
	aliases TEXT NOT NULL DEFAULT '[]',
	keywords TEXT NOT NULL DEFAULT '[]',
	path_fragments TEXT NOT NULL DEFAULT '[]',
	weight REAL NOT NULL DEFAULT 1.0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Registered project paths (longest-prefix-wins resolution)
CREATE TABLE IF NOT EXISTS project_paths (
	path TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('local', 'server')) DEFAULT 'server',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

-- Typed stores. Structurally identical; category routing picks the table.
CREATE TABLE IF NOT EXISTS knowledge (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL DEFAULT '',
	client_id TEXT NOT NULL DEFAULT '',
	platform_id TEXT NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	confidence REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bugs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL DEFAULT '',
	client_id TEXT NOT NULL DEFAULT '',
	platform_id TEXT NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	confidence REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL DEFAULT '',
	client_id TEXT NOT NULL DEFAULT '',
	platform_id TEXT NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	confidence REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS lessons (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL DEFAULT '',
	client_id TEXT NOT NULL DEFAULT '',
	platform_id TEXT NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	confidence REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Extraction queue (written by the capture collaborator, consumed once)
CREATE TABLE IF NOT EXISTS extractions (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	project_path TEXT NOT NULL DEFAULT '',
	priority INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('pending', 'processed', 'skipped', 'failed')) DEFAULT 'pending',
	attempts INTEGER NOT NULL DEFAULT 0,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	processed_at DATETIME
);

-- Flagged conflicts (one-way status transitions, terminal once resolved)
CREATE TABLE IF NOT EXISTS conflicts (
	id TEXT PRIMARY KEY,
	ref_table TEXT NOT NULL,
	ref_id TEXT NOT NULL,
	existing_content TEXT NOT NULL DEFAULT '',
	new_content TEXT NOT NULL,
	conflict_type TEXT NOT NULL CHECK(conflict_type IN ('contradiction', 'outdated', 'duplicate', 'ambiguous')),
	description TEXT NOT NULL DEFAULT '',
	priority INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('pending', 'resolved_keep_existing', 'resolved_update', 'resolved_both_valid', 'resolved_dismiss')) DEFAULT 'pending',
	resolved_by TEXT NOT NULL DEFAULT '',
	resolution_notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	resolved_at DATETIME
);

-- Purge requests (status alone never deletes anything)
CREATE TABLE IF NOT EXISTS purge_requests (
	id TEXT PRIMARY KEY,
	target_table TEXT NOT NULL,
	record_ids TEXT NOT NULL,
	reason TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'approved', 'rejected')) DEFAULT 'pending',
	flagged_by TEXT NOT NULL DEFAULT '',
	reviewed_by TEXT NOT NULL DEFAULT '',
	reviewed_at DATETIME,
	executed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Reviewer notifications
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	recipient TEXT NOT NULL,
	ref_type TEXT NOT NULL CHECK(ref_type IN ('conflict', 'purge_request')),
	ref_id TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('unread', 'read', 'dismissed')) DEFAULT 'unread',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Capture sessions (pruned by the retention sweep)
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL CHECK(status IN ('active', 'completed', 'stale')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS session_messages (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (session_id) REFERENCES sessions(id)
);

-- Audit log (who changed what)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	actor_id TEXT NOT NULL DEFAULT '',
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	field_name TEXT NOT NULL DEFAULT '',
	old_value TEXT NOT NULL DEFAULT '',
	new_value TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_conflicts_status ON conflicts(status);
CREATE INDEX IF NOT EXISTS idx_purge_requests_status ON purge_requests(status);
CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient, status);
CREATE INDEX IF NOT EXISTS idx_session_messages_session ON session_messages(session_id);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
