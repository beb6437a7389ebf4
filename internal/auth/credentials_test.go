package auth

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithingod1/parish-record/internal/models"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// memUsers is an in-memory UserStorage
type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by username
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return storage.ErrUserAlreadyExists
	}
	copied := *user
	m.users[user.Username] = &copied
	return nil
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUsers) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *memUsers) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memUsers) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *memUsers) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == userID {
			user.LastLogin = &lastLogin
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func newTestCredentials(users storage.UserStorage) *Credentials {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCredentials(logger, users)
}

func TestCredentials_Bootstrap(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)

	require.NoError(t, c.Bootstrap(ctx))

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	admin, err := users.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminUsername, admin.Username)
	assert.NotEmpty(t, admin.PasswordHash)
	assert.NotEqual(t, DefaultAdminPassword, admin.PasswordHash)
}

func TestCredentials_BootstrapIdempotent(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)

	require.NoError(t, c.Bootstrap(ctx))

	admin, err := users.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)

	require.NoError(t, c.Bootstrap(ctx))

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The original identity is untouched
	again, err := users.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestCredentials_BootstrapSkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)

	hash, err := HashPassword("customsecret")
	require.NoError(t, err)
	require.NoError(t, users.CreateUser(ctx, &models.User{
		ID:           "custom-id",
		Username:     "sacristan",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}))

	require.NoError(t, c.Bootstrap(ctx))

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = users.GetUserByUsername(ctx, DefaultAdminUsername)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestCredentials_VerifyDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)
	require.NoError(t, c.Bootstrap(ctx))

	user, err := c.Verify(ctx, DefaultAdminUsername, DefaultAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminUsername, user.Username)

	// Successful login records last_login
	stored, err := users.GetUserByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestCredentials_VerifyGenericFailure(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)
	require.NoError(t, c.Bootstrap(ctx))

	// Wrong password and unknown username fail identically
	_, wrongPassErr := c.Verify(ctx, DefaultAdminUsername, "wrongpass")
	assert.ErrorIs(t, wrongPassErr, ErrAuthFailed)

	_, ghostErr := c.Verify(ctx, "ghost", "whatever")
	assert.ErrorIs(t, ghostErr, ErrAuthFailed)

	assert.Equal(t, wrongPassErr.Error(), ghostErr.Error())
}

func TestCredentials_ResetPassword(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	c := newTestCredentials(users)
	require.NoError(t, c.Bootstrap(ctx))

	require.NoError(t, c.ResetPassword(ctx, DefaultAdminUsername, "newlongpassword"))

	_, err := c.Verify(ctx, DefaultAdminUsername, DefaultAdminPassword)
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, err = c.Verify(ctx, DefaultAdminUsername, "newlongpassword")
	assert.NoError(t, err)
}

func TestCredentials_ResetPasswordUnknownUser(t *testing.T) {
	ctx := context.Background()
	c := newTestCredentials(newMemUsers())

	err := c.ResetPassword(ctx, "ghost", "newlongpassword")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
