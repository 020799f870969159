package internal

import "time"

// Helpers shared by tests in this module. They live in the non-test
// build so the export package tests can use them too.

// CreateTestSession returns a session with two canned messages.
func CreateTestSession(id string) *Session {
	return CreateTestSessionWithMessages(id, []Message{
		{
			ID:        "m1",
			SessionID: id,
			Role:      RoleUser,
			Content:   "Hello, how are you?",
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "m2",
			SessionID: id,
			Role:      RoleAssistant,
			Content:   "Doing well, thanks for asking.",
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC),
		},
	})
}

// CreateTestSessionWithMessages returns a session holding the given
// messages.
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	sess := &Session{
		ID:        id,
		Title:     "Test Session",
		CreatedAt: created,
		UpdatedAt: created,
		Messages:  messages,
	}
	if len(messages) > 0 {
		sess.UpdatedAt = messages[len(messages)-1].CreatedAt
	}
	return sess
}
