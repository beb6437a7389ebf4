package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Revoke records a session ID as revoked until expiresAt.
// The expiry is stored so PurgeExpired can drop entries for tokens
// that would no longer verify anyway.
func (s *Storage) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked sessions bucket not found")
		}
		return bucket.Put([]byte(sessionID), []byte(expiresAt.UTC().Format(time.RFC3339)))
	})
}

// IsRevoked reports whether a session ID is on the deny-list
func (s *Storage) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	var revoked bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked sessions bucket not found")
		}
		revoked = bucket.Get([]byte(sessionID)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}

	return revoked, nil
}

// PurgeExpired removes deny-list entries whose expiry has passed
func (s *Storage) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	purged := 0

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked sessions bucket not found")
		}

		cursor := bucket.Cursor()
		for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
			expiresAt, err := time.Parse(time.RFC3339, string(value))
			if err != nil {
				// Unreadable entry, drop it rather than keep it forever
				if err := cursor.Delete(); err != nil {
					return err
				}
				purged++
				continue
			}

			if expiresAt.Before(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
				purged++
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired revocations: %w", err)
	}

	return purged, nil
}
