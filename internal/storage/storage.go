// Package storage persists users and credentials in an external document
// store. All credential access is owner-scoped: a record belonging to a
// different owner is indistinguishable from an absent one.
package storage

import (
	"context"

	"github.com/passvault/passvault-backend/internal/models"
)

// CredentialFields are the writable fields of a credential. Password is
// expected to already be ciphertext; the storage layer never sees plaintext.
type CredentialFields struct {
	Sitename string
	Username string
	Email    string
	Password string
	Other    string
}

type UserStore interface {
	// CreateUser inserts a new user with the given bcrypt hash. Returns
	// common.ErrConflict if the email is already taken.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	// UserByEmail returns common.ErrNotFound when no such user exists.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

type CredentialStore interface {
	CreateCredential(ctx context.Context, ownerID string, fields CredentialFields) (*models.Credential, error)
	// CredentialsByOwner lists all credentials of one owner. Unknown owners
	// yield an empty result, never an error.
	CredentialsByOwner(ctx context.Context, ownerID string) ([]models.Credential, error)
	// SearchByOwner filters the owner's credentials by case-insensitive
	// substring match on sitename.
	SearchByOwner(ctx context.Context, ownerID, sitename string) ([]models.Credential, error)
	// UpdateCredential replaces the writable fields of the credential with the
	// given id, scoped jointly by (id, owner). A record owned by someone else
	// returns common.ErrNotFound, same as a missing one.
	UpdateCredential(ctx context.Context, ownerID, id string, fields CredentialFields) (*models.Credential, error)
	// DeleteCredential removes the credential scoped by (id, owner), with the
	// same not-found semantics as UpdateCredential.
	DeleteCredential(ctx context.Context, ownerID, id string) error
}
