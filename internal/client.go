package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// dataPrefix marks a payload-bearing block in the event stream.
	dataPrefix = "data: "
	// doneSentinel terminates the stream.
	doneSentinel = "[DONE]"
	// emptyReply is returned when a successful completion carried no
	// content fragments at all.
	emptyReply = "No response content"

	maxResponseBytes = 8 << 20

	testMessage = "Hello, this is a test message"
)

// chatRequest is the completion request body.
type chatRequest struct {
	Stream   bool          `json:"stream"`
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamResponse is one decoded stream frame.
type streamResponse struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta        deltaContent `json:"delta"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

type deltaContent struct {
	Content string `json:"content,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Client sends chat completions to the configured endpoint and
// reassembles the streamed response. It keeps no state between calls.
type Client struct {
	cfg        *Config
	endpoint   string
	httpClient *http.Client
}

// NewClient validates the configured endpoint and returns a client.
// A malformed endpoint fails here, not per request.
func NewClient(cfg *Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, cfg.Endpoint)
	}
	return &Client{
		cfg:        cfg,
		endpoint:   u.String(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// SetHTTPClient overrides the transport. Used by tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Send submits userText as one chat completion and returns the
// reassembled reply. Callers must pass non-empty trimmed text; the
// client does not re-validate. On failure the returned error is
// exactly one taxonomy case (see errors.go).
func (c *Client) Send(ctx context.Context, userText string) (string, error) {
	reqBody := chatRequest{
		Stream: true,
		Model:  c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.SystemPrompt},
			{Role: "user", Content: userText},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &DecodingError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	LogDebug("sending completion request to %s (model %s)", c.endpoint, c.cfg.Model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == 0 {
		return "", &InvalidResponseError{}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body content is
		// irrelevant to classification.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", &APIError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	if !utf8.Valid(body) {
		return "", &DecodingError{Err: fmt.Errorf("response body is not valid UTF-8")}
	}

	content := parseEventStream(string(body))
	if content == "" {
		return emptyReply, nil
	}
	return content, nil
}

// parseEventStream splits an event-stream body on blank-line boundaries
// and concatenates the content fragments of every well-formed frame.
// Malformed frames are skipped so one corrupt frame cannot abort the
// stream.
func parseEventStream(body string) string {
	events := strings.Split(body, "\n\n")

	var out strings.Builder
	for _, event := range events {
		event = strings.TrimLeft(event, "\n")
		if !strings.HasPrefix(event, dataPrefix) {
			continue
		}
		raw := strings.TrimSpace(event[len(dataPrefix):])
		if raw == doneSentinel {
			continue
		}

		var frame streamResponse
		if err := json.Unmarshal([]byte(raw), &frame); err != nil {
			LogDebug("skipping malformed stream frame: %v", err)
			continue
		}
		if len(frame.Choices) > 0 {
			out.WriteString(frame.Choices[0].Delta.Content)
		}
	}
	return out.String()
}

// TestConnection sends a canned message through the normal send path
// and reports pass/fail. It never touches persisted state.
func (c *Client) TestConnection(ctx context.Context) error {
	reply, err := c.Send(ctx, testMessage)
	if err != nil {
		LogDebug("connection test failed: %v", err)
		return err
	}
	LogDebug("connection test succeeded (%d bytes)", len(reply))
	return nil
}
