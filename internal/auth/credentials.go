package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/faithingod1/parish-record/internal/models"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// Default identity created when the store is empty. Documented behavior
// of the application; rotate with --reset-password after first run.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// dummyHash is a bcrypt hash of an unguessable value, compared against
// when the username doesn't exist so that lookups for missing and
// existing users take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Credentials verifies logins and manages the admin identity.
type Credentials struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewCredentials creates a credential service backed by users
func NewCredentials(logger *slog.Logger, users storage.UserStorage) *Credentials {
	return &Credentials{
		logger: logger,
		users:  users,
	}
}

// Bootstrap creates the default admin identity if the store holds no
// users. Calling it on a populated store is a no-op, so it is safe to
// run on every startup.
func (c *Credentials) Bootstrap(ctx context.Context) error {
	count, err := c.users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := c.users.CreateUser(ctx, user); err != nil {
		// Lost a race against a concurrent bootstrap, the identity exists
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	c.logger.Warn("created default admin account, change the password immediately",
		slog.String("username", DefaultAdminUsername))

	return nil
}

// Verify checks a username/password pair and returns the matching user.
// Both an unknown username and a wrong password yield ErrAuthFailed.
func (c *Credentials) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Burn a comparable amount of time before failing
			VerifyPassword(password, dummyHash)
			return nil, ErrAuthFailed
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrAuthFailed
	}

	now := time.Now()
	if err := c.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Not critical, log and continue
		c.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	return user, nil
}

// ResetPassword stores a fresh hash of newPassword for username.
func (c *Credentials) ResetPassword(ctx context.Context, username, newPassword string) error {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := c.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	c.logger.Info("password updated", slog.String("username", username))

	return nil
}
