package handlers

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified principal attached to a request after the
// session gate has resolved the cookie. Handlers never see raw cookies.
type Identity struct {
	UserID    string
	Username  string
	SessionID string
}

// WithIdentity attaches a resolved identity to the context
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity extracts the resolved identity from the context
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
