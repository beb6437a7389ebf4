package server

import (
	"log/slog"
	"net/http"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/server/handlers"
	"github.com/faithingod1/parish-record/internal/server/middleware"
	"github.com/faithingod1/parish-record/internal/server/storage"
)

// routerDeps collects everything the route table needs
type routerDeps struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	sessions    *auth.Sessions
	records     storage.RecordStorage
	backup      storage.Backuper
	renderer    *handlers.Renderer
}

// newRouter builds the route table and wraps it in the request gate:
// recovery -> logging -> session resolution, with per-route auth and
// CSRF enforcement on everything behind the login.
func newRouter(deps routerDeps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.logger, deps.credentials, deps.sessions, deps.renderer)
	dashboardHandler := handlers.NewDashboardHandler(deps.logger, deps.records, deps.sessions, deps.renderer)
	recordsHandler := handlers.NewRecordsHandler(deps.logger, deps.records, deps.sessions, deps.renderer)
	exportHandler := handlers.NewExportHandler(deps.logger, deps.records, deps.backup)
	healthHandler := handlers.NewHealthHandler(deps.logger)

	requireAuth := middleware.RequireAuth(deps.logger)
	csrf := middleware.CSRF(deps.logger, deps.sessions)

	// protected routes go through the auth gate, then the CSRF gate
	// (which only acts on mutating verbs)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(csrf(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", authHandler.Root)
	mux.HandleFunc("GET /healthz", healthHandler.Health)

	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("POST /logout", protected(authHandler.Logout))

	mux.Handle("GET /dashboard", protected(dashboardHandler.Dashboard))

	mux.Handle("GET /confirmations", protected(recordsHandler.List))
	mux.Handle("GET /confirmations/new", protected(recordsHandler.NewForm))
	mux.Handle("POST /confirmations/new", protected(recordsHandler.Create))
	mux.Handle("GET /confirmations/{id}", protected(recordsHandler.View))
	mux.Handle("GET /confirmations/{id}/edit", protected(recordsHandler.EditForm))
	mux.Handle("POST /confirmations/{id}/edit", protected(recordsHandler.Update))
	mux.Handle("POST /confirmations/{id}/delete", protected(recordsHandler.Delete))

	mux.Handle("GET /backup/db", protected(exportHandler.BackupDB))
	mux.Handle("GET /backup/csv", protected(exportHandler.ExportCSV))

	// outermost first: recovery catches everything, logging sees the
	// final status, session resolution runs before any route handler
	var handler http.Handler = mux
	handler = middleware.Session(deps.logger, deps.sessions)(handler)
	handler = middleware.Logging(deps.logger)(handler)
	handler = middleware.Recovery(deps.logger)(handler)

	return handler
}
