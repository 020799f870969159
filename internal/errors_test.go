package internal

import (
	"errors"
	"fmt"
	"testing"
)

func TestRenderError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid endpoint",
			err:  fmt.Errorf("%w: %q", ErrInvalidEndpoint, "nope"),
			want: "Invalid URL configuration",
		},
		{
			name: "invalid response",
			err:  &InvalidResponseError{},
			want: "Invalid response from server",
		},
		{
			name: "api error carries status code",
			err:  &APIError{StatusCode: 404},
			want: "API Error: API returned status code 404",
		},
		{
			name: "network error carries cause",
			err:  &NetworkError{Err: cause},
			want: "Network error: connection refused",
		},
		{
			name: "decoding error carries cause",
			err:  &DecodingError{Err: cause},
			want: "Failed to process response: connection refused",
		},
		{
			name: "unknown error falls through",
			err:  errors.New("mystery"),
			want: "An unexpected error occurred: mystery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderError(tt.err); got != tt.want {
				t.Errorf("RenderError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
	}{
		{name: "network error", err: &NetworkError{Err: cause}},
		{name: "decoding error", err: &DecodingError{Err: cause}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Errorf("errors.Is(%v, cause) = false, want true", tt.err)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	apiErr := &APIError{StatusCode: 503}
	if got := apiErr.Error(); got != "API returned status code 503" {
		t.Errorf("APIError.Error() = %q", got)
	}

	netErr := &NetworkError{Err: errors.New("dial tcp: timeout")}
	if got := netErr.Error(); got != "network error: dial tcp: timeout" {
		t.Errorf("NetworkError.Error() = %q", got)
	}
}
