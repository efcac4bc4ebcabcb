package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/passvault/passvault-backend/internal/auth"
	"github.com/passvault/passvault-backend/internal/config"
	"github.com/passvault/passvault-backend/internal/database"
	"github.com/passvault/passvault-backend/internal/handlers"
	"github.com/passvault/passvault-backend/internal/routes"
	"github.com/passvault/passvault-backend/internal/services"
	"github.com/passvault/passvault-backend/internal/storage"
	"github.com/passvault/passvault-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration; the process must not start without its secrets
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	cipher, err := utils.NewCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatal("Invalid ENCRYPTION_KEY: ", err, " (generate with: openssl rand -base64 32)")
	}
	log.Println("✅ Encryption key configured")

	// Log connection attempt (without showing password)
	log.Printf("Connecting to MongoDB: %s", maskMongoURI(cfg.MongoURI))
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	// Ensure the unique email index and the credential owner index
	if err := storage.EnsureIndexes(context.Background(), database.DB); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Wire services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authService := services.NewAuthService(storage.NewMongoUserStore(database.DB), tokens)
	credentialService := services.NewCredentialService(storage.NewMongoCredentialStore(database.DB), cipher)
	handlers.Init(authService, credentialService)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, tokens)

	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  POST   /auth/signup")
	log.Println("  POST   /auth/login")
	log.Println("  GET    /credentials")
	log.Println("  POST   /credentials")
	log.Println("  GET    /credentials/search")
	log.Println("  PUT    /credentials/{id}")
	log.Println("  DELETE /credentials/{id}")

	log.Printf("🚀 PassVault backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// maskMongoURI hides the password in a mongodb:// URI for logging.
func maskMongoURI(uri string) string {
	if !strings.Contains(uri, "@") {
		return uri
	}
	parts := strings.Split(uri, "@")
	if strings.Contains(parts[0], ":") {
		userPass := strings.Split(parts[0], ":")
		if len(userPass) >= 3 {
			return strings.Replace(uri, userPass[2], "***", 1)
		}
	}
	return uri
}
