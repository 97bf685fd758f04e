package sqlite

import (
	"database/sql"
	"fmt"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts are stored as decimal strings; timestamps as Unix microseconds.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    payee_vpa TEXT NOT NULL DEFAULT '',
    payee_name TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS splits (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    purpose TEXT NOT NULL,
    total TEXT NOT NULL,
    mode TEXT NOT NULL,
    owner_share TEXT NOT NULL,
    owner_id TEXT NOT NULL,
    payee_vpa TEXT NOT NULL DEFAULT '',
    payee_name TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    split_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    status TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT '',
    reference TEXT,
    cash_code TEXT,
    paid_at INTEGER,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (split_id) REFERENCES splits(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_participants_reference ON participants(reference) WHERE reference IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_participants_split_id ON participants(split_id, position);
CREATE INDEX IF NOT EXISTS idx_splits_owner_id ON splits(owner_id, created_at);
CREATE INDEX IF NOT EXISTS idx_contacts_owner_id ON contacts(owner_id);
`

// addedColumns are columns introduced after a table's first release.
// CREATE TABLE IF NOT EXISTS leaves older databases without them.
var addedColumns = []struct{ table, column, definition string }{
	{"users", "payee_vpa", "TEXT NOT NULL DEFAULT ''"},
	{"users", "payee_name", "TEXT NOT NULL DEFAULT ''"},
}

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	for _, c := range addedColumns {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", c.table, c.column).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", c.table, err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.Exec("ALTER TABLE " + c.table + " ADD COLUMN " + c.column + " " + c.definition); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}
