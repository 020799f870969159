package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// The schema here mirrors internal.OpenDatabase. testutil cannot import
// the internal package (the internal tests import testutil), so the
// tables are declared again.
const testSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	is_error   INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);

CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT
);
`

// CreateInMemoryDB creates an in-memory SQLite database with the argot
// schema for testing.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// A second connection would see a different memory database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		db.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDB creates a test database with sample sessions and messages.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	InsertSession(t, db, "sess1", "Climate debate", 1000, 4000)
	InsertSession(t, db, "sess2", "New Chat", 2000, 2000)

	InsertMessage(t, db, "msg1", "sess1", "user", "Is the earth warming?", false, 3000)
	InsertMessage(t, db, "msg2", "sess1", "assistant", "Yes, measurably.", false, 4000)

	return db
}

// InsertSession inserts a session row.
func InsertSession(t *testing.T, db *sql.DB, id, title string, createdAt, updatedAt int64) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, title, createdAt, updatedAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert session %s: %v", id, err)
	}
}

// InsertMessage inserts a message row.
func InsertMessage(t *testing.T, db *sql.DB, id, sessionID, role, content string, isError bool, createdAt int64) {
	t.Helper()
	errFlag := 0
	if isError {
		errFlag = 1
	}
	_, err := db.Exec(
		"INSERT INTO messages (id, session_id, role, content, is_error, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, sessionID, role, content, errFlag, createdAt,
	)
	if err != nil {
		t.Fatalf("Failed to insert message %s: %v", id, err)
	}
}
