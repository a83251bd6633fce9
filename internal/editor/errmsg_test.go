package editor

import (
	"errors"
	"testing"

	"intervention-service/internal/apiclient"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured error field wins",
			err:  &apiclient.APIError{StatusCode: 400, Body: `{"error":"name already taken"}`},
			want: "name already taken",
		},
		{
			name: "nested response error",
			err:  &apiclient.APIError{StatusCode: 502, Body: `{"response":{"error":"upstream refused"}}`},
			want: "upstream refused",
		},
		{
			name: "plain body falls through to the generic message",
			err:  &apiclient.APIError{StatusCode: 500, Body: "boom"},
			want: "api request failed: 500 boom",
		},
		{
			name: "non-API error uses its message",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "nil error hits the fallback",
			err:  nil,
			want: fallbackErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractErrorMessage(tt.err); got != tt.want {
				t.Errorf("extractErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
