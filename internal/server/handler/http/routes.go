// Package http provides HTTP routing and middleware configuration
// for the wallet backend.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PhantomXD-nepal/np-wallet/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the wallet API.
//
// Routes:
//
//	GET  /api/health                            → liveness (used as a connectivity probe)
//	POST /api/auth/register                     → authHandler.Register
//	POST /api/auth/signin                       → authHandler.SignIn
//	POST /api/transactions                      → txHandler.Create
//	GET  /api/transactions/{userId}             → txHandler.ByUser
//	GET  /api/transactions/summary/{userId}     → txHandler.Summary
//	DELETE /api/transactions/{id}               → txHandler.Delete
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. TokenAuth(verifier)        — bearer-token auth, auth routes excluded
func NewRouter(
	authHandler *AuthHandler,
	txHandler *TransactionHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.TokenAuth(verifier))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/signin", authHandler.SignIn)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/transactions", txHandler.Create)
			r.Get("/transactions/summary/{userId}", txHandler.Summary)
			r.Get("/transactions/{userId}", txHandler.ByUser)
			r.Delete("/transactions/{id}", txHandler.Delete)
		})
	})

	return r
}
