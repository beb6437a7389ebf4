package auth

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSessions(secret string) *Sessions {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewSessions(logger, SessionConfig{
		Secret: []byte(secret),
		TTL:    time.Hour,
	}, noopRevocations{})
}

func TestCSRFToken_DeterministicPerSession(t *testing.T) {
	s := newTestSessions("test-secret")

	token1 := s.CSRFToken("session-a")
	token2 := s.CSRFToken("session-a")
	assert.Equal(t, token1, token2)

	// Different sessions get different tokens
	assert.NotEqual(t, token1, s.CSRFToken("session-b"))

	// Different secrets get different tokens
	other := newTestSessions("other-secret")
	assert.NotEqual(t, token1, other.CSRFToken("session-a"))
}

func TestValidateCSRF(t *testing.T) {
	s := newTestSessions("test-secret")
	token := s.CSRFToken("session-a")

	tests := []struct {
		name      string
		sessionID string
		supplied  string
		want      bool
	}{
		{name: "matching token", sessionID: "session-a", supplied: token, want: true},
		{name: "missing token", sessionID: "session-a", supplied: "", want: false},
		{name: "token for another session", sessionID: "session-b", supplied: token, want: false},
		{name: "garbage token", sessionID: "session-a", supplied: "forged", want: false},
		{name: "empty session", sessionID: "", supplied: token, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ValidateCSRF(tt.sessionID, tt.supplied))
		})
	}
}
