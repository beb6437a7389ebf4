// Package server wires storage, authentication and handlers together
// and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/config"
	"github.com/faithingod1/parish-record/internal/server/handlers"
	"github.com/faithingod1/parish-record/internal/server/storage/boltdb"
	"github.com/faithingod1/parish-record/internal/server/storage/sqlite"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

// App owns the server lifecycle
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *sqlite.Storage
	sessions *auth.Sessions
	revoked  *boltdb.Storage
	server   *http.Server
}

// NewApp opens the stores, bootstraps the admin identity and builds
// the HTTP server
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.LogLevel)

	secret := []byte(cfg.SigningSecret)
	if len(secret) == 0 {
		generated, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing secret: %w", err)
		}
		secret = generated
		logger.Warn("no signing secret configured, using an ephemeral one; sessions will not survive a restart")
	}

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	revoked, err := boltdb.New(ctx, cfg.SessionDBPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	credentials := auth.NewCredentials(logger, store)
	if err := credentials.Bootstrap(ctx); err != nil {
		store.Close()
		revoked.Close()
		return nil, fmt.Errorf("failed to bootstrap credentials: %w", err)
	}

	sessions := auth.NewSessions(logger, auth.SessionConfig{
		Secret:       secret,
		TTL:          cfg.SessionTTL,
		SecureCookie: cfg.SecureCookies,
	}, revoked)

	renderer, err := handlers.NewRenderer(logger)
	if err != nil {
		store.Close()
		revoked.Close()
		return nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	router := newRouter(routerDeps{
		logger:      logger,
		credentials: credentials,
		sessions:    sessions,
		records:     store,
		backup:      store,
		renderer:    renderer,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sessions: sessions,
		revoked:  revoked,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled or a termination signal
// arrives, then shuts down gracefully and closes the stores.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.purgeLoop(ctx)

	errC := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", a.cfg.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		a.closeStores()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.closeStores()
	if err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}

// purgeLoop periodically drops deny-list entries for expired tokens.
// Purely housekeeping; resolution checks expiry on its own.
func (a *App) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purged, err := a.sessions.PurgeExpired(ctx)
			if err != nil {
				a.logger.Warn("failed to purge expired revocations", slog.Any("error", err))
				continue
			}
			if purged > 0 {
				a.logger.Debug("purged expired revocations", slog.Int("count", purged))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) closeStores() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close record store", slog.Any("error", err))
	}
	if err := a.revoked.Close(); err != nil {
		a.logger.Warn("failed to close session store", slog.Any("error", err))
	}
}

// newLogger builds the process logger with the configured level
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// randomSecret generates 32 random bytes for ephemeral signing
func randomSecret() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return []byte(base64.RawStdEncoding.EncodeToString(buf)), nil
}
