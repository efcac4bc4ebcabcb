package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/models"
)

// MemoryUserStore is an in-memory UserStore used by tests and local
// development. Semantics mirror the Mongo implementation.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by email
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return nil, common.ErrConflict
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Email:     email,
		Password:  passwordHash,
	}
	s.users[email] = user
	return &user, nil
}

func (s *MemoryUserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

// MemoryCredentialStore is the in-memory CredentialStore counterpart.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	creds map[string]models.Credential // keyed by id hex
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{creds: make(map[string]models.Credential)}
}

func (s *MemoryCredentialStore) CreateCredential(_ context.Context, ownerID string, fields CredentialFields) (*models.Credential, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	cred := models.Credential{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Sitename:  fields.Sitename,
		Username:  fields.Username,
		Email:     fields.Email,
		Password:  fields.Password,
		Other:     fields.Other,
		UserID:    owner,
	}
	s.creds[cred.ID.Hex()] = cred
	return &cred, nil
}

func (s *MemoryCredentialStore) CredentialsByOwner(_ context.Context, ownerID string) ([]models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := []models.Credential{}
	for _, c := range s.creds {
		if c.UserID.Hex() == ownerID {
			creds = append(creds, c)
		}
	}
	return creds, nil
}

func (s *MemoryCredentialStore) SearchByOwner(_ context.Context, ownerID, sitename string) ([]models.Credential, error) {
	needle := strings.ToLower(sitename)

	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := []models.Credential{}
	for _, c := range s.creds {
		if c.UserID.Hex() == ownerID && strings.Contains(strings.ToLower(c.Sitename), needle) {
			creds = append(creds, c)
		}
	}
	return creds, nil
}

func (s *MemoryCredentialStore) UpdateCredential(_ context.Context, ownerID, id string, fields CredentialFields) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok || cred.UserID.Hex() != ownerID {
		return nil, common.ErrNotFound
	}

	cred.Sitename = fields.Sitename
	cred.Username = fields.Username
	cred.Email = fields.Email
	cred.Password = fields.Password
	cred.Other = fields.Other
	cred.UpdatedAt = time.Now().UTC()
	s.creds[id] = cred
	return &cred, nil
}

func (s *MemoryCredentialStore) DeleteCredential(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[id]
	if !ok || cred.UserID.Hex() != ownerID {
		return common.ErrNotFound
	}
	delete(s.creds, id)
	return nil
}
