package middleware

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/models"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// fakeRevocations is an in-memory deny-list for middleware tests
type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Time)}
}

func (f *fakeRevocations) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[sessionID] = expiresAt
	return nil
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[sessionID]
	return ok, nil
}

func (f *fakeRevocations) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func setupTestSessions(t *testing.T) *auth.Sessions {
	t.Helper()
	return auth.NewSessions(setupTestLogger(), auth.SessionConfig{
		Secret: []byte("test-secret"),
		TTL:    30 * time.Minute,
	}, newFakeRevocations())
}

func issueTestSession(t *testing.T, sessions *auth.Sessions) (string, time.Time) {
	t.Helper()
	token, expiresAt, err := sessions.Issue(&models.User{ID: "user-123", Username: "admin"})
	require.NoError(t, err)
	return token, expiresAt
}
