package internal

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// ErrSessionNotFound is returned when an operation names a session id
// that does not exist.
var ErrSessionNotFound = errors.New("session not found")

const selectedSessionKey = "selected_session"

// Store owns all sessions and their messages. Every mutation is
// committed before the call returns, so reads always see durable state.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open session database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSession allocates and persists a new session. An empty title
// falls back to the default. The new session becomes the most recent
// entry in enumeration order.
func (s *Store) CreateSession(title string) (*Session, error) {
	sess := NewSession(title)
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.Title, sess.CreatedAt.UnixMilli(), sess.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "insert session")
	}
	LogDebug("created session %s (%q)", sess.ID, sess.Title)
	return sess, nil
}

// ListSessions returns all sessions, most recent activity first.
// Sessions with equal activity timestamps keep insertion order. Each
// session carries its ordered messages.
func (s *Store) ListSessions() ([]*Session, error) {
	rows, err := s.db.Query(
		"SELECT id, title, created_at, updated_at FROM sessions ORDER BY updated_at DESC, rowid ASC",
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate sessions")
	}

	for _, sess := range sessions {
		if sess.Messages, err = s.loadMessages(sess.ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// GetSession returns one session with its ordered messages.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		"SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?", id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.Messages, err = s.loadMessages(id); err != nil {
		return nil, err
	}
	return sess, nil
}

// RenameSession replaces the session title. A blank new title is a
// silent no-op; the prior title stays.
func (s *Store) RenameSession(id, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		LogDebug("ignoring blank rename for session %s", id)
		return nil
	}
	res, err := s.db.Exec("UPDATE sessions SET title = ? WHERE id = ?", newTitle, id)
	if err != nil {
		return pkgerrors.Wrap(err, "rename session")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes the session and all its messages. If the
// deleted session was selected, selection moves to the most recent
// remaining session, or to none if the store is now empty.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "begin delete")
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return pkgerrors.Wrap(err, "delete session")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}

	var selected sql.NullString
	err = tx.QueryRow("SELECT value FROM app_state WHERE key = ?", selectedSessionKey).Scan(&selected)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return pkgerrors.Wrap(err, "read selection")
	}
	if selected.Valid && selected.String == id {
		var next sql.NullString
		err = tx.QueryRow("SELECT id FROM sessions ORDER BY updated_at DESC, rowid ASC LIMIT 1").Scan(&next)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return pkgerrors.Wrap(err, "find next session")
		}
		if next.Valid {
			_, err = tx.Exec(
				"INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				selectedSessionKey, next.String,
			)
		} else {
			_, err = tx.Exec("DELETE FROM app_state WHERE key = ?", selectedSessionKey)
		}
		if err != nil {
			return pkgerrors.Wrap(err, "reassign selection")
		}
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit delete")
	}
	LogDebug("deleted session %s", id)
	return nil
}

// ClearMessages removes every message from the session but keeps the
// session itself untouched, activity timestamp included.
func (s *Store) ClearMessages(id string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM sessions WHERE id = ?", id).Scan(&exists); err != nil {
		return pkgerrors.Wrap(err, "check session")
	}
	if exists == 0 {
		return ErrSessionNotFound
	}
	if _, err := s.db.Exec("DELETE FROM messages WHERE session_id = ?", id); err != nil {
		return pkgerrors.Wrap(err, "clear messages")
	}
	return nil
}

// AppendMessage persists a message and bumps its session's activity
// timestamp. The message must reference an existing session.
func (s *Store) AppendMessage(msg Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "begin append")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO messages (id, session_id, role, content, is_error, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.SessionID, string(msg.Role), msg.Content, boolToInt(msg.IsError), msg.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return pkgerrors.Wrap(err, "insert message")
	}

	res, err := tx.Exec(
		"UPDATE sessions SET updated_at = MAX(updated_at, ?) WHERE id = ?",
		msg.CreatedAt.UnixMilli(), msg.SessionID,
	)
	if err != nil {
		return pkgerrors.Wrap(err, "bump session activity")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}

	return pkgerrors.Wrap(tx.Commit(), "commit append")
}

// SelectedSession returns the id of the currently selected session, or
// "" if none is selected.
func (s *Store) SelectedSession() (string, error) {
	var v sql.NullString
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", selectedSessionKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(err, "read selection")
	}
	return v.String, nil
}

// SetSelectedSession records the selected session id. The id must name
// an existing session.
func (s *Store) SetSelectedSession(id string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM sessions WHERE id = ?", id).Scan(&exists); err != nil {
		return pkgerrors.Wrap(err, "check session")
	}
	if exists == 0 {
		return ErrSessionNotFound
	}
	_, err := s.db.Exec(
		"INSERT INTO app_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		selectedSessionKey, id,
	)
	return pkgerrors.Wrap(err, "write selection")
}

// EnsureSelected makes sure a usable selection exists: if the store is
// empty a fresh session is created, and a missing or dangling selection
// is repointed at the most recent session. Returns the selected
// session.
func (s *Store) EnsureSelected() (*Session, error) {
	id, err := s.SelectedSession()
	if err != nil {
		return nil, err
	}
	if id != "" {
		sess, err := s.GetSession(id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}

	sessions, err := s.ListSessions()
	if err != nil {
		return nil, err
	}
	var sess *Session
	if len(sessions) > 0 {
		sess = sessions[0]
	} else {
		if sess, err = s.CreateSession(""); err != nil {
			return nil, err
		}
	}
	if err := s.SetSelectedSession(sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) loadMessages(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(
		"SELECT id, session_id, role, content, is_error, created_at FROM messages WHERE session_id = ? ORDER BY created_at ASC, rowid ASC",
		sessionID,
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query messages")
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var (
			msg     Message
			role    string
			isError int
			ts      int64
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &isError, &ts); err != nil {
			return nil, pkgerrors.Wrap(err, "scan message")
		}
		msg.Role = Role(role)
		msg.IsError = isError != 0
		msg.CreatedAt = time.UnixMilli(ts).UTC()
		messages = append(messages, msg)
	}
	return messages, pkgerrors.Wrap(rows.Err(), "iterate messages")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		sess      Session
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&sess.ID, &sess.Title, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(err, "scan session")
	}
	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	sess.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
