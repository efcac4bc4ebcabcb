package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/middleware"
	"github.com/passvault/passvault-backend/internal/models"
	"github.com/passvault/passvault-backend/internal/services"
)

type CredentialRequest struct {
	Sitename string `json:"sitename" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Other    string `json:"other,omitempty"`
}

func (req CredentialRequest) input() services.CredentialInput {
	return services.CredentialInput{
		Sitename: req.Sitename,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Other:    req.Other,
	}
}

// CreateCredential handles POST /credentials.
func CreateCredential(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	_, err := credentialService.Create(r.Context(), userID, req.input())
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Credential saved."})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields.")
	default:
		log.Printf("create credential failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save credential")
	}
}

// ListCredentials handles GET /credentials. Passwords in the response are
// decrypted plaintext; that is the application's contract.
func ListCredentials(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	creds, err := credentialService.List(r.Context(), userID)
	if err != nil {
		log.Printf("list credentials failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Credential{"credentials": creds})
}

// SearchCredentials handles GET /credentials/search?sitename=.
func SearchCredentials(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	sitename := r.URL.Query().Get("sitename")
	if sitename == "" {
		writeError(w, http.StatusBadRequest, "Missing sitename query.")
		return
	}

	creds, err := credentialService.Search(r.Context(), userID, sitename)
	if err != nil {
		log.Printf("search credentials failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Credential{"credentials": creds})
}

// UpdateCredential handles PUT /credentials/{id}.
func UpdateCredential(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	cred, err := credentialService.Update(r.Context(), userID, id, req.input())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]*models.Credential{"credential": cred})
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "Missing required fields.")
	case errors.Is(err, common.ErrNotFound):
		// Not-owned must look exactly like missing.
		writeError(w, http.StatusNotFound, "Credential not found or unauthorized")
	default:
		log.Printf("update credential failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update credential")
	}
}

// DeleteCredential handles DELETE /credentials/{id}.
func DeleteCredential(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	err := credentialService.Delete(r.Context(), userID, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Credential deleted successfully"})
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "Credential not found or unauthorized")
	default:
		log.Printf("delete credential failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete credential")
	}
}
