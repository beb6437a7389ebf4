package storage

import (
	"context"
	"time"
)

// RevocationStore defines interface for the session deny-list.
// Session tokens are self-contained and signed; the store only has to
// remember the IDs of tokens revoked before their natural expiry.
type RevocationStore interface {
	// Revoke records a session ID as revoked until expiresAt.
	// Revoking an already revoked ID is a no-op.
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error

	// IsRevoked reports whether a session ID is on the deny-list
	IsRevoked(ctx context.Context, sessionID string) (bool, error)

	// PurgeExpired removes deny-list entries whose tokens have expired
	// anyway. Returns the number of removed entries.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}
