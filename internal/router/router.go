package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-service/internal/config"
	"go-auth-service/internal/handler"
	"go-auth-service/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	secretHandler *handler.SecretHandler,
	healthCheck func(w http.ResponseWriter, r *http.Request),
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	// Every route sees either an identity or anonymous; nothing is rejected
	// at this stage.
	r.Use(authMiddleware.Authenticate)

	r.Get("/health", healthCheck)

	r.Route("/auth", func(auth chi.Router) {
		auth.Use(middleware.Timeout(cfg.RequestTimeout))
		auth.Post("/signup", authHandler.Signup)
		auth.Post("/login", authHandler.Login)
	})

	r.Route("/secrets", func(secrets chi.Router) {
		secrets.Use(middleware.Timeout(cfg.RequestTimeout))
		secrets.Use(authMiddleware.RequireAuth)
		secrets.Post("/", secretHandler.Create)
		secrets.Get("/", secretHandler.List)
		secrets.Get("/{secret_id}", secretHandler.Get)
	})

	return r
}
