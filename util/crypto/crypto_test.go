package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash(hash, "correct horse battery staple"))
	assert.False(t, CheckPasswordHash(hash, "wrong password"))
	assert.False(t, CheckPasswordHash("not-a-bcrypt-hash", "anything"))
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("same input")
	assert.NoError(t, err)
	h2, err := HashPassword("same input")
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
