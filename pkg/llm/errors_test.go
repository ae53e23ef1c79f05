package llm

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{"auth", errors.New("status 401 Unauthorized"), ErrorTypeAuth, false},
		{"bad key", errors.New("invalid api key provided"), ErrorTypeAuth, false},
		{"rate limit", errors.New("429 too many requests"), ErrorTypeRateLimit, true},
		{"timeout", errors.New("context deadline exceeded"), ErrorTypeTimeout, true},
		{"connection", errors.New("dial tcp: connection refused"), ErrorTypeConnection, true},
		{"server", errors.New("502 bad gateway"), ErrorTypeServer, true},
		{"overloaded", errors.New("model is overloaded"), ErrorTypeServer, true},
		{"unknown", errors.New("something odd"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the cause")
			}
		})
	}
}

func TestClassifyError_PassesThroughStructured(t *testing.T) {
	orig := NewError(ErrorTypeResponse, "empty completion", false, nil)
	if got := ClassifyError(orig); got != orig {
		t.Errorf("expected the original error back, got %+v", got)
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if got := ClassifyError(nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestError_Messages(t *testing.T) {
	e := NewError(ErrorTypeTimeout, "request timed out", true, errors.New("deadline"))
	if e.Error() != "timeout: request timed out: deadline" {
		t.Errorf("got %q", e.Error())
	}
	if !e.IsRetryable() {
		t.Error("expected retryable")
	}

	bare := NewError(ErrorTypeAuth, "authentication failed", false, nil)
	if bare.Error() != "auth: authentication failed" {
		t.Errorf("got %q", bare.Error())
	}
}
