package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/faithingod1/parish-record/internal/models"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "parish_session"

// SessionClaims represents the signed session payload
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionConfig holds session issuing parameters
type SessionConfig struct {
	Secret       []byte
	TTL          time.Duration
	SecureCookie bool
}

// Sessions issues, resolves and revokes signed session tokens.
// Tokens are stateless (HS256-signed, self-contained); revocation
// before expiry goes through a deny-list of token IDs.
type Sessions struct {
	logger      *slog.Logger
	cfg         SessionConfig
	revocations storage.RevocationStore
	now         func() time.Time
}

// NewSessions creates a session service
func NewSessions(logger *slog.Logger, cfg SessionConfig, revocations storage.RevocationStore) *Sessions {
	return &Sessions{
		logger:      logger,
		cfg:         cfg,
		revocations: revocations,
		now:         time.Now,
	}
}

// Issue creates a signed session token for user with a fresh random ID
func (s *Sessions) Issue(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)

	claims := SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "parish-record",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Resolve verifies a session token and returns its claims.
// A missing, malformed, tampered, expired or revoked token yields
// ErrInvalidSession.
func (s *Sessions) Resolve(ctx context.Context, tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, ErrInvalidSession
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// Revoke puts a still-valid token on the deny-list (logout).
// Revoking an already invalid token is a no-op.
func (s *Sessions) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.InfoContext(ctx, "session revoked", slog.String("user_id", claims.UserID))

	return nil
}

// PurgeExpired drops deny-list entries for tokens past their expiry
func (s *Sessions) PurgeExpired(ctx context.Context) (int, error) {
	return s.revocations.PurgeExpired(ctx, s.now())
}

// parse verifies signature, algorithm and time claims
func (s *Sessions) parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// NewCookie wraps a session token in the session cookie with the
// attribute set required for browser-held credentials.
func (s *Sessions) NewCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that removes the session cookie
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
