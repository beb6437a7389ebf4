package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStorage creates a file-backed storage in a temp dir
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestRevocation_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	revoked, err := s.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "session-1", time.Now().Add(time.Hour)))

	revoked, err = s.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other sessions are unaffected
	revoked, err = s.IsRevoked(ctx, "session-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocation_RevokeTwiceIsNoop(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	expiresAt := time.Now().Add(time.Hour)
	require.NoError(t, s.Revoke(ctx, "session-1", expiresAt))
	require.NoError(t, s.Revoke(ctx, "session-1", expiresAt))

	revoked, err := s.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocation_EmptySessionID(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	assert.Error(t, s.Revoke(ctx, "", time.Now().Add(time.Hour)))
}

func TestRevocation_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	now := time.Now()
	require.NoError(t, s.Revoke(ctx, "expired-1", now.Add(-time.Hour)))
	require.NoError(t, s.Revoke(ctx, "expired-2", now.Add(-time.Minute)))
	require.NoError(t, s.Revoke(ctx, "live", now.Add(time.Hour)))

	purged, err := s.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)

	revoked, err := s.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, "expired-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocation_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Revoke(ctx, "session-1", time.Now().Add(time.Hour)))
	require.NoError(t, s.Close())

	// Logout must hold across restarts
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	revoked, err := reopened.IsRevoked(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
