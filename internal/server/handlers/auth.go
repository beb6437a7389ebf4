package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/faithingod1/parish-record/internal/auth"
)

// AuthHandler serves login and logout
type AuthHandler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	sessions    *auth.Sessions
	renderer    *Renderer
}

// NewAuthHandler creates a new handler for authentication routes
func NewAuthHandler(logger *slog.Logger, credentials *auth.Credentials, sessions *auth.Sessions, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		credentials: credentials,
		sessions:    sessions,
		renderer:    renderer,
	}
}

type loginPageData struct {
	Error string
}

// Root handles GET /
// Redirects to the dashboard for authenticated sessions, to login otherwise
func (h *AuthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentity(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentity(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "login.html", loginPageData{})
}

// Login handles POST /login
// On success issues a session cookie and redirects to the dashboard.
// Unknown username and wrong password produce the same generic error.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login.html", loginPageData{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthFailed) {
			h.logger.WarnContext(ctx, "login failed", slog.String("username", username))
			h.renderer.Render(w, http.StatusBadRequest, "login.html", loginPageData{Error: "Invalid username or password"})
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify credentials", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.sessions.Issue(user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue session", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	http.SetCookie(w, h.sessions.NewCookie(token, expiresAt))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout
// Revokes the current session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := h.sessions.Revoke(ctx, cookie.Value); err != nil {
			h.logger.ErrorContext(ctx, "failed to revoke session", slog.Any("error", err))
		}
	}

	http.SetCookie(w, h.sessions.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
