package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, CheckPasswordHash(hash, "pw123"))
	assert.False(t, CheckPasswordHash(hash, "pw124"))
}

func TestHashPasswordSalted(t *testing.T) {
	hash1, err := HashPassword("secret")
	assert.NoError(t, err)
	hash2, err := HashPassword("secret")
	assert.NoError(t, err)

	// Per-call salt: same input, different hashes, both verify.
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPasswordHash(hash1, "secret"))
	assert.True(t, CheckPasswordHash(hash2, "secret"))
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	assert.False(t, CheckPasswordHash("", "secret"))
	assert.False(t, CheckPasswordHash("not-a-bcrypt-hash", "secret"))
	assert.False(t, CheckPasswordHash("$argon2id$v=19$m=65536", "secret"))
}
