package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "Typical password", password: "password123"},
		{name: "Empty password", password: ""},
		{name: "Long password with symbols", password: "a-rather-long-password-with-symbols!@#$%^&*()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.Contains(t, hash, "$2a$")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "mySecurePassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name           string
		hashedPassword string
		password       string
		want           bool
	}{
		{name: "Correct password", hashedPassword: hash, password: password, want: true},
		{name: "Incorrect password", hashedPassword: hash, password: "wrongPassword", want: false},
		{name: "Empty password", hashedPassword: hash, password: "", want: false},
		{name: "Invalid hash", hashedPassword: "not-a-bcrypt-hash", password: password, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hashedPassword, tt.password))
		})
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	password := "testPassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// bcrypt salts, so the hashes differ but both verify
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, VerifyPassword(hash1, password))
	assert.True(t, VerifyPassword(hash2, password))
}

func TestHashToken(t *testing.T) {
	token := "some-opaque-session-token"

	digest := HashToken(token)

	// deterministic: sessions are looked up by re-hashing the presented token
	assert.Equal(t, digest, HashToken(token))
	assert.Len(t, digest, 64)
	assert.NotEqual(t, digest, HashToken(token+"x"))
	assert.NotContains(t, digest, token)
}
