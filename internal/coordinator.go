package internal

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrEmptyMessage is returned when a turn is submitted with no content
// after trimming.
var ErrEmptyMessage = errors.New("message is empty")

// Sender is the slice of the client the coordinator needs.
type Sender interface {
	Send(ctx context.Context, userText string) (string, error)
}

// Coordinator runs one exchange at a time per session: it appends the
// user message, performs the network round trip, and appends either the
// reply or an error-flagged assistant message. Transport failures never
// escape as errors; the transcript is the failure channel.
type Coordinator struct {
	store  *Store
	client Sender

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCoordinator wires a store and a streaming client together.
func NewCoordinator(store *Store, client Sender) *Coordinator {
	return &Coordinator{
		store:    store,
		client:   client,
		inFlight: make(map[string]struct{}),
	}
}

// Exchange runs one user turn against the named session and returns
// the assistant message that was appended (reply or rendered error).
//
// At most one exchange may be pending per session; a concurrent second
// turn fails with ErrTurnInFlight before anything is written. Exchanges
// against different sessions proceed independently.
func (c *Coordinator) Exchange(ctx context.Context, sessionID, userText string) (*Message, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, ErrEmptyMessage
	}

	if err := c.acquire(sessionID); err != nil {
		return nil, err
	}
	defer c.release(sessionID)

	// The user message lands before the network call so it is visible
	// (and durable) even if the call fails.
	userMsg := NewMessage(sessionID, RoleUser, userText, false)
	if err := c.store.AppendMessage(userMsg); err != nil {
		return nil, errors.Wrap(err, "append user message")
	}

	var reply Message
	content, err := c.client.Send(ctx, userText)
	if err != nil {
		LogDebug("exchange failed for session %s: %v", sessionID, err)
		reply = NewMessage(sessionID, RoleAssistant, RenderError(err), true)
	} else {
		reply = NewMessage(sessionID, RoleAssistant, content, false)
	}

	// Reply timestamps must not precede the user message.
	if reply.CreatedAt.Before(userMsg.CreatedAt) {
		reply.CreatedAt = userMsg.CreatedAt
	}

	if err := c.store.AppendMessage(reply); err != nil {
		return nil, errors.Wrap(err, "append assistant message")
	}
	return &reply, nil
}

func (c *Coordinator) acquire(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[sessionID]; busy {
		return ErrTurnInFlight
	}
	c.inFlight[sessionID] = struct{}{}
	return nil
}

func (c *Coordinator) release(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, sessionID)
}
