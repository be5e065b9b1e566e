package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tallerify/auth-server/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the accounts API.
//
// Routes:
//
//	GET  /                     → hello
//	GET  /ping                 → pong
//	POST /users/register       → RegistrationHandler.Register
//	POST /users/login          → AuthHandler.Login
//	POST /users/logout         → AuthHandler.Logout
//	POST /users/oauth_login    → RegistrationHandler.OAuthLogin
//	POST /users/block          → ModerationHandler.Block
//	POST /users/notify         → NotifyHandler.Notify
//	GET  /users                → ModerationHandler.List
//	GET  /metrics              → ModerationHandler.Metrics
//	POST /admin/register       → RegistrationHandler.RegisterAdmin
//	POST /admin/login          → AuthHandler.LoginAdmin
func NewRouter(
	authHandler *AuthHandler,
	registrationHandler *RegistrationHandler,
	moderationHandler *ModerationHandler,
	notifyHandler *NotifyHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Use(middleware.WithRequestID)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeEntry(w, HelloUsers)
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		writeEntry(w, Pong)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", moderationHandler.List)
		r.Post("/register", registrationHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/oauth_login", registrationHandler.OAuthLogin)
		r.Post("/block", moderationHandler.Block)
		r.Post("/notify", notifyHandler.Notify)
	})

	r.Get("/metrics", moderationHandler.Metrics)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/register", registrationHandler.RegisterAdmin)
		r.Post("/login", authHandler.LoginAdmin)
	})

	return r
}
