package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)

	// Stored hash must never equal the plaintext.
	assert.NotEqual(t, "p1", hash)
	assert.True(t, CheckPassword("p1", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("p1")
	require.NoError(t, err)
	second, err := HashPassword("p1")
	require.NoError(t, err)

	// bcrypt embeds a random salt, so equal passwords hash differently.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("p1", first))
	assert.True(t, CheckPassword("p1", second))
}

func TestCheckPasswordBadHash(t *testing.T) {
	assert.False(t, CheckPassword("p1", "not-a-bcrypt-hash"))
}
