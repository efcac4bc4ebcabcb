// Package common defines the sentinel errors shared across the service,
// storage and handler layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Input validation (missing or malformed fields).
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Cipher errors. Callers must never fall back to plaintext on these.
	ErrEncrypt = errors.New("encryption failed")
	ErrDecrypt = errors.New("decryption failed")
)
