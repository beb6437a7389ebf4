package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/server/handlers"
)

// Session resolves the session cookie on every request and, when the
// token verifies, attaches the identity to the request context.
// Requests without a valid session pass through anonymously; it is
// RequireAuth that turns anonymity into a redirect.
func Session(logger *slog.Logger, sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				// No cookie, anonymous request
				next.ServeHTTP(w, r)
				return
			}

			claims, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidSession) {
					logger.ErrorContext(r.Context(), "failed to resolve session", slog.Any("error", err))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				// Expired, tampered or revoked token: drop the cookie
				// and continue anonymously
				http.SetCookie(w, sessions.ClearCookie())
				next.ServeHTTP(w, r)
				return
			}

			ctx := handlers.WithIdentity(r.Context(), handlers.Identity{
				UserID:    claims.UserID,
				Username:  claims.Username,
				SessionID: claims.ID,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects anonymous requests to the login page.
// Must run after Session in the chain.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := handlers.GetIdentity(r.Context()); !ok {
				logger.DebugContext(r.Context(), "unauthenticated request",
					slog.String("path", r.URL.Path))
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
