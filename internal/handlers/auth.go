package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/services"
)

var (
	authService       *services.AuthService
	credentialService *services.CredentialService
	validate          = validator.New()
)

// Init wires the handler package to its services. Must be called once before
// the routes are served.
func Init(auth *services.AuthService, creds *services.CredentialService) {
	authService = auth
	credentialService = creds
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /auth/signup.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	err := authService.Signup(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully."})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "Email and password are required.")
	case errors.Is(err, common.ErrConflict):
		writeError(w, http.StatusConflict, "User already exists.")
	default:
		log.Printf("signup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
	}
}

// Login handles POST /auth/login. Unknown email and wrong password produce
// byte-identical responses.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	token, err := authService.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "Email and password are required.")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials.")
	default:
		log.Printf("login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
