package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed; changing it only affects newly created hashes.
const bcryptCost = 10

// HashPassword hashes a password with bcrypt. The salt is embedded in the
// returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
