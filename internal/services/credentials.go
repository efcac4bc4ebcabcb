package services

import (
	"context"
	"fmt"

	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/models"
	"github.com/passvault/passvault-backend/internal/storage"
	"github.com/passvault/passvault-backend/pkg/utils"
)

// CredentialInput holds the user-supplied fields of a credential. Password is
// plaintext here; it is encrypted before it reaches the store.
type CredentialInput struct {
	Sitename string
	Username string
	Email    string
	Password string
	Other    string
}

func (in CredentialInput) validate() error {
	if in.Sitename == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return common.ErrValidation
	}
	return nil
}

type CredentialService struct {
	store  storage.CredentialStore
	cipher *utils.Cipher
}

func NewCredentialService(store storage.CredentialStore, cipher *utils.Cipher) *CredentialService {
	return &CredentialService{store: store, cipher: cipher}
}

// Create encrypts the password and persists a new credential for the owner.
// The returned credential carries the plaintext password, matching what read
// paths return.
func (s *CredentialService) Create(ctx context.Context, ownerID string, in CredentialInput) (*models.Credential, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncrypt, err)
	}

	cred, err := s.store.CreateCredential(ctx, ownerID, storage.CredentialFields{
		Sitename: in.Sitename,
		Username: in.Username,
		Email:    in.Email,
		Password: encrypted,
		Other:    in.Other,
	})
	if err != nil {
		return nil, err
	}

	cred.Password = in.Password
	return cred, nil
}

// List returns all of the owner's credentials with passwords decrypted.
func (s *CredentialService) List(ctx context.Context, ownerID string) ([]models.Credential, error) {
	creds, err := s.store.CredentialsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.decryptAll(creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// Search returns the owner's credentials whose sitename contains the query,
// case-insensitively, with passwords decrypted.
func (s *CredentialService) Search(ctx context.Context, ownerID, sitename string) ([]models.Credential, error) {
	if sitename == "" {
		return nil, common.ErrValidation
	}

	creds, err := s.store.SearchByOwner(ctx, ownerID, sitename)
	if err != nil {
		return nil, err
	}
	if err := s.decryptAll(creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// Update replaces the credential's fields, re-encrypting the password. The
// (id, owner) pair must match; anything else is common.ErrNotFound.
func (s *CredentialService) Update(ctx context.Context, ownerID, id string, in CredentialInput) (*models.Credential, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEncrypt, err)
	}

	cred, err := s.store.UpdateCredential(ctx, ownerID, id, storage.CredentialFields{
		Sitename: in.Sitename,
		Username: in.Username,
		Email:    in.Email,
		Password: encrypted,
		Other:    in.Other,
	})
	if err != nil {
		return nil, err
	}

	cred.Password = in.Password
	return cred, nil
}

// Delete removes the credential scoped by (id, owner).
func (s *CredentialService) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.DeleteCredential(ctx, ownerID, id)
}

// decryptAll decrypts passwords in place. A single failure fails the whole
// read; ciphertext is never passed through as if it were plaintext.
func (s *CredentialService) decryptAll(creds []models.Credential) error {
	for i := range creds {
		plain, err := s.cipher.Decrypt(creds[i].Password)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrDecrypt, err)
		}
		creds[i].Password = plain
	}
	return nil
}
