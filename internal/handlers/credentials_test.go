package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passvault/passvault-backend/internal/models"
)

// signupAndLogin registers a user through the API and returns a bearer token.
func signupAndLogin(t *testing.T, r *chi.Mux, email, password string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func decodeCredentials(t *testing.T, body []byte) []models.Credential {
	t.Helper()
	var resp struct {
		Credentials []models.Credential `json:"credentials"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Credentials
}

func gmailCredential() map[string]string {
	return map[string]string{
		"sitename": "gmail",
		"username": "u",
		"email":    "e",
		"password": "secret",
	}
}

func TestCredentialsRequireToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/credentials"},
		{http.MethodPost, "/credentials"},
		{http.MethodGet, "/credentials/search?sitename=git"},
		{http.MethodPut, "/credentials/abc"},
		{http.MethodDelete, "/credentials/abc"},
	} {
		rec := doJSON(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	}
}

func TestCreateAndListCredentials(t *testing.T) {
	r, tokens, credStore := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	rec := doJSON(t, r, http.MethodPost, "/credentials", token, gmailCredential())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Credential saved."}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/credentials", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	creds := decodeCredentials(t, rec.Body.Bytes())
	require.Len(t, creds, 1)
	assert.Equal(t, "gmail", creds[0].Sitename)
	// The response carries the decrypted plaintext, not the ciphertext.
	assert.Equal(t, "secret", creds[0].Password)

	// At rest the password is ciphertext.
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	raw, err := credStore.CredentialsByOwner(context.Background(), claims.UserID)
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.NotEqual(t, "secret", raw[0].Password)
}

func TestCreateCredentialMissingFields(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	body := gmailCredential()
	delete(body, "password")
	rec := doJSON(t, r, http.MethodPost, "/credentials", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing required fields."}`, rec.Body.String())
}

func TestListCredentialsEmpty(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	rec := doJSON(t, r, http.MethodGet, "/credentials", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"credentials":[]}`, rec.Body.String())
}

func TestSearchCredentials(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	body := gmailCredential()
	body["sitename"] = "GitHub"
	rec := doJSON(t, r, http.MethodPost, "/credentials", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Case-insensitive substring match.
	rec = doJSON(t, r, http.MethodGet, "/credentials/search?sitename=git", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	creds := decodeCredentials(t, rec.Body.Bytes())
	require.Len(t, creds, 1)
	assert.Equal(t, "GitHub", creds[0].Sitename)
	assert.Equal(t, "secret", creds[0].Password)

	rec = doJSON(t, r, http.MethodGet, "/credentials/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing sitename query."}`, rec.Body.String())
}

func TestUpdateCredential(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	rec := doJSON(t, r, http.MethodPost, "/credentials", token, gmailCredential())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/credentials", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	creds := decodeCredentials(t, rec.Body.Bytes())
	require.Len(t, creds, 1)
	id := creds[0].ID.Hex()

	body := gmailCredential()
	body["password"] = "rotated"
	body["other"] = "backup codes: none"
	rec = doJSON(t, r, http.MethodPut, "/credentials/"+id, token, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Credential models.Credential `json:"credential"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rotated", resp.Credential.Password)
	assert.Equal(t, "backup codes: none", resp.Credential.Other)

	// Missing fields on update.
	body = gmailCredential()
	delete(body, "sitename")
	rec = doJSON(t, r, http.MethodPut, "/credentials/"+id, token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown and malformed ids are both 404.
	rec = doJSON(t, r, http.MethodPut, "/credentials/ffffffffffffffffffffffff", token, gmailCredential())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Credential not found or unauthorized"}`, rec.Body.String())
}

func TestDeleteCredential(t *testing.T) {
	r, _, _ := newTestServer(t)
	token := signupAndLogin(t, r, "a@x.com", "p1")

	rec := doJSON(t, r, http.MethodPost, "/credentials", token, gmailCredential())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/credentials", token, nil)
	creds := decodeCredentials(t, rec.Body.Bytes())
	require.Len(t, creds, 1)
	id := creds[0].ID.Hex()

	rec = doJSON(t, r, http.MethodDelete, "/credentials/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Credential deleted successfully"}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodDelete, "/credentials/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Credential not found or unauthorized"}`, rec.Body.String())
}

func TestOwnershipIsolationAcrossTokens(t *testing.T) {
	r, _, _ := newTestServer(t)
	tokenA := signupAndLogin(t, r, "a@x.com", "p1")
	tokenB := signupAndLogin(t, r, "b@x.com", "p2")

	rec := doJSON(t, r, http.MethodPost, "/credentials", tokenA, gmailCredential())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/credentials", tokenA, nil)
	creds := decodeCredentials(t, rec.Body.Bytes())
	require.Len(t, creds, 1)
	id := creds[0].ID.Hex()

	// User B cannot see, update or delete A's credential; the responses look
	// exactly like the record not existing.
	rec = doJSON(t, r, http.MethodGet, "/credentials", tokenB, nil)
	assert.JSONEq(t, `{"credentials":[]}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPut, "/credentials/"+id, tokenB, gmailCredential())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Credential not found or unauthorized"}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodDelete, "/credentials/"+id, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A's credential survives.
	rec = doJSON(t, r, http.MethodGet, "/credentials", tokenA, nil)
	creds = decodeCredentials(t, rec.Body.Bytes())
	assert.Len(t, creds, 1)
}

func TestVerifiedTokenOfDeletedUserStillWorks(t *testing.T) {
	// The authorizer trusts the token's user id as-is and does not re-check
	// the identity store; an unknown-but-signed id simply scopes to nothing.
	r, tokens, _ := newTestServer(t)

	ghost, err := tokens.Generate("64f000000000000000000000", "ghost@x.com")
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/credentials", ghost, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"credentials":[]}`, rec.Body.String())
}
