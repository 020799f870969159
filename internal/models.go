package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultSessionTitle is the title given to sessions created without one.
const DefaultSessionTitle = "New Chat"

// Message is a single entry in a session transcript. Messages are
// write-once: once appended to a session they are never mutated.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	IsError   bool      `json:"is_error,omitempty" yaml:"is_error,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Session is a named, ordered conversation thread. Messages are kept in
// insertion order, which matches chronological order.
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// NewSession returns an unsaved session with a fresh id. An empty or
// whitespace-only title falls back to DefaultSessionTitle.
func NewSession(title string) *Session {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultSessionTitle
	}
	now := time.Now().UTC()
	return &Session{
		ID:        shortuuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewMessage returns an unsaved message belonging to the given session.
func NewMessage(sessionID string, role Role, content string, isError bool) Message {
	return Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		IsError:   isError,
		CreatedAt: time.Now().UTC(),
	}
}

// MessageCount returns the number of messages in the session.
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// LastActivity returns the timestamp of the most recent message, or the
// session's creation time if it has none.
func (s *Session) LastActivity() time.Time {
	if len(s.Messages) == 0 {
		return s.CreatedAt
	}
	return s.Messages[len(s.Messages)-1].CreatedAt
}
