package internal

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSender scripts the streaming client for coordinator tests.
type fakeSender struct {
	reply string
	err   error

	started chan struct{}
	release chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, userText string) (string, error) {
	if f.started != nil {
		select {
		case <-f.started:
		default:
			close(f.started)
		}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestCoordinator_Exchange_Success(t *testing.T) {
	store := newTestStore(t)
	sess, err := store.CreateSession("debate")
	if err != nil {
		t.Fatal(err)
	}

	coordinator := NewCoordinator(store, &fakeSender{reply: "the facts say yes"})
	reply, err := coordinator.Exchange(context.Background(), sess.ID, "  is it true?  ")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if reply.IsError {
		t.Error("reply should not be error-flagged")
	}
	if reply.Content != "the facts say yes" {
		t.Errorf("reply content = %q", reply.Content)
	}

	got, err := store.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", got.MessageCount())
	}
	if got.Messages[0].Role != RoleUser || got.Messages[0].Content != "is it true?" {
		t.Errorf("messages[0] = %+v, want trimmed user message first", got.Messages[0])
	}
	if got.Messages[1].Role != RoleAssistant || got.Messages[1].Content != "the facts say yes" {
		t.Errorf("messages[1] = %+v, want assistant reply second", got.Messages[1])
	}
	if got.Messages[1].CreatedAt.Before(got.Messages[0].CreatedAt) {
		t.Error("reply timestamp precedes user message timestamp")
	}
}

func TestCoordinator_Exchange_Failure(t *testing.T) {
	tests := []struct {
		name        string
		sendErr     error
		wantContent string
	}{
		{
			name:        "api error",
			sendErr:     &APIError{StatusCode: 429},
			wantContent: "API Error: API returned status code 429",
		},
		{
			name:        "network error",
			sendErr:     &NetworkError{Err: errors.New("connection reset")},
			wantContent: "Network error: connection reset",
		},
		{
			name:        "decoding error",
			sendErr:     &DecodingError{Err: errors.New("bad payload")},
			wantContent: "Failed to process response: bad payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			sess, err := store.CreateSession("debate")
			if err != nil {
				t.Fatal(err)
			}

			coordinator := NewCoordinator(store, &fakeSender{err: tt.sendErr})
			reply, err := coordinator.Exchange(context.Background(), sess.ID, "hello")
			if err != nil {
				t.Fatalf("Exchange() error = %v; transport failures must land in the transcript", err)
			}
			if !reply.IsError {
				t.Error("reply should be error-flagged")
			}
			if reply.Content != tt.wantContent {
				t.Errorf("reply content = %q, want %q", reply.Content, tt.wantContent)
			}

			got, err := store.GetSession(sess.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.MessageCount() != 2 {
				t.Fatalf("MessageCount() = %d, want 2 (user message plus error message)", got.MessageCount())
			}
			if got.Messages[0].Role != RoleUser || got.Messages[0].IsError {
				t.Errorf("messages[0] = %+v, want plain user message", got.Messages[0])
			}
		})
	}
}

func TestCoordinator_Exchange_EmptyInput(t *testing.T) {
	store := newTestStore(t)
	sess, err := store.CreateSession("debate")
	if err != nil {
		t.Fatal(err)
	}

	coordinator := NewCoordinator(store, &fakeSender{reply: "unused"})
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := coordinator.Exchange(context.Background(), sess.ID, input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Exchange(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}

	got, err := store.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.MessageCount() != 0 {
		t.Errorf("rejected turns must not write messages, got %d", got.MessageCount())
	}
}

func TestCoordinator_SingleFlightPerSession(t *testing.T) {
	store := newTestStore(t)
	sess, err := store.CreateSession("debate")
	if err != nil {
		t.Fatal(err)
	}
	other, err := store.CreateSession("other")
	if err != nil {
		t.Fatal(err)
	}

	sender := &fakeSender{
		reply:   "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	coordinator := NewCoordinator(store, sender)

	firstDone := make(chan error, 1)
	go func() {
		_, err := coordinator.Exchange(context.Background(), sess.ID, "first")
		firstDone <- err
	}()

	select {
	case <-sender.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first exchange never reached the client")
	}

	// A second turn on the same session is rejected while the first is
	// pending, and nothing extra is written.
	if _, err := coordinator.Exchange(context.Background(), sess.ID, "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("concurrent Exchange() error = %v, want ErrTurnInFlight", err)
	}

	// A different session proceeds independently.
	if err := coordinator.acquire(other.ID); err != nil {
		t.Errorf("acquire(other) error = %v, want nil", err)
	}
	coordinator.release(other.ID)

	close(sender.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Exchange() error = %v", err)
	}

	got, err := store.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2 (rejected turn wrote nothing)", got.MessageCount())
	}

	// The flight slot is free again after completion.
	if _, err := coordinator.Exchange(context.Background(), sess.ID, "third"); err != nil {
		t.Errorf("Exchange() after completion error = %v", err)
	}
}
