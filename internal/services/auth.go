// Package services implements the application logic between the HTTP
// handlers and the stores.
package services

import (
	"context"
	"errors"

	"github.com/passvault/passvault-backend/internal/auth"
	"github.com/passvault/passvault-backend/internal/common"
	"github.com/passvault/passvault-backend/internal/storage"
	"github.com/passvault/passvault-backend/pkg/utils"
)

type AuthService struct {
	users  storage.UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users storage.UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return common.ErrValidation
	}

	_, err := s.users.UserByEmail(ctx, email)
	if err == nil {
		return common.ErrConflict
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.users.CreateUser(ctx, email, hash)
	return err
}

// Login verifies the credentials and issues a signed bearer token. An unknown
// email and a wrong password return the identical ErrInvalidCredentials so
// the two cases cannot be told apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrValidation
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", common.ErrInvalidCredentials
	}

	return s.tokens.Generate(user.ID.Hex(), user.Email)
}
