package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3nh4-segura")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nh4-segura", hash)

	assert.True(t, CheckPassword(hash, "s3nh4-segura"))
	assert.False(t, CheckPassword(hash, "senha-errada"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}
