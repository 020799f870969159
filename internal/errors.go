package internal

import (
	"errors"
	"fmt"
)

// The chat transport fails in exactly one of these ways. Classification
// is first-match-wins in Client.Send; RenderError turns each case into
// the string shown in the transcript.

// ErrInvalidEndpoint reports that the configured endpoint cannot be
// parsed as a URL. It is raised at client construction time.
var ErrInvalidEndpoint = errors.New("invalid endpoint URL")

// ErrTurnInFlight reports that an exchange is already pending for the
// session. The new turn is rejected without mutating anything.
var ErrTurnInFlight = errors.New("an exchange is already in flight for this session")

// InvalidResponseError reports a transport response without
// interpretable status metadata.
type InvalidResponseError struct{}

func (e *InvalidResponseError) Error() string {
	return "invalid response from server"
}

// APIError reports a non-2xx status from the completion endpoint.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code %d", e.StatusCode)
}

// NetworkError reports a failed transport call (DNS, connection
// refused, timeout, TLS).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodingError reports a response body that could not be interpreted
// at the top level. Individual malformed stream frames are skipped and
// never surface as this.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// RenderError converts a client failure into the human-readable string
// appended to the transcript as an error-flagged assistant message.
func RenderError(err error) string {
	var (
		invalidResp *InvalidResponseError
		apiErr      *APIError
		netErr      *NetworkError
		decodeErr   *DecodingError
	)
	switch {
	case errors.Is(err, ErrInvalidEndpoint):
		return "Invalid URL configuration"
	case errors.As(err, &invalidResp):
		return "Invalid response from server"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("API Error: API returned status code %d", apiErr.StatusCode)
	case errors.As(err, &netErr):
		return fmt.Sprintf("Network error: %v", netErr.Err)
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("Failed to process response: %v", decodeErr.Err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
