package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/passvault/passvault-backend/internal/auth"
	"github.com/passvault/passvault-backend/internal/handlers"
	"github.com/passvault/passvault-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, tokens *auth.TokenManager) {
	// Auth routes (no token required)
	r.Post("/auth/signup", handlers.Signup)
	r.Post("/auth/login", handlers.Login)

	// Credential routes, gated by the bearer-token authorizer
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(tokens))

		pr.Get("/credentials", handlers.ListCredentials)
		pr.Post("/credentials", handlers.CreateCredential)
		pr.Get("/credentials/search", handlers.SearchCredentials)
		pr.Put("/credentials/{id}", handlers.UpdateCredential)
		pr.Delete("/credentials/{id}", handlers.DeleteCredential)
	})
}
