package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_DistinctHashes(t *testing.T) {
	hash1, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	hash2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	// Random salt: same plaintext never hashes to the same string
	assert.NotEqual(t, hash1, hash2)

	assert.True(t, VerifyPassword("correct horse battery staple", hash1))
	assert.True(t, VerifyPassword("correct horse battery staple", hash2))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("admin124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must fail verification, never panic
			assert.False(t, VerifyPassword("admin123", tt.hash))
		})
	}
}
