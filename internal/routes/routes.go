package routes

import (
	"net/http"

	"github.com/templui/fileshare/internal/app"
	"github.com/templui/fileshare/internal/handler"
	"github.com/templui/fileshare/internal/middleware"
)

// multipartEnvelope is the slack allowed on top of the upload cap for
// multipart boundaries, part headers and the CSRF field
const multipartEnvelope = 64 << 10

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.FileService)
	auth := handler.NewAuthHandler(app.AuthService, app.SessionService)
	files := handler.NewFileHandler(app.FileService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.HandleFunc("POST /login", middleware.RequireCSRF(auth.Login))
	mux.HandleFunc("GET /register", auth.RegisterPage)
	mux.HandleFunc("POST /register", middleware.RequireCSRF(auth.Register))
	mux.HandleFunc("GET /logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	uploadLimit := middleware.MaxBodySize(app.Cfg.MaxUploadSize+multipartEnvelope, http.HandlerFunc(files.TooLarge))

	mux.HandleFunc("GET /{$}", middleware.RequireAuth(home.Home))
	mux.HandleFunc("POST /upload", middleware.RequireAuth(uploadLimit(middleware.RequireCSRF(files.Upload))))
	mux.HandleFunc("GET /download/{name}", middleware.RequireAuth(files.Download))
	mux.HandleFunc("GET /delete/{name}", middleware.RequireAuth(files.Delete))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		// Config must be first (cookie flags, app name)
		middleware.Config(app.Cfg),
		// Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.Recover(http.HandlerFunc(handler.ServerError)),
		// Issue the CSRF cookie; POST routes validate via RequireCSRF
		middleware.CSRFToken,
		middleware.AuthMiddleware(app.SessionService),
		middleware.WithURLPath,
	)
}
