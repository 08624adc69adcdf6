package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pass1234", hash)

	assert.True(t, CheckPasswordHash("pass1234", hash))
	assert.False(t, CheckPasswordHash("pass12345", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("pass1234", "not-a-bcrypt-hash"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("pass1234"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
}
