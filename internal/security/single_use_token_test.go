package security_test

import (
	"testing"
	"tour-booking-api/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSingleUseToken(t *testing.T) {
	plaintext, hash, err := security.GenerateSingleUseToken()

	assert.NoError(t, err)
	assert.Len(t, plaintext, 64) // 32 байта в hex
	assert.NotEqual(t, plaintext, hash)
	assert.Equal(t, hash, security.HashSingleUseToken(plaintext))
}

func TestGenerateSingleUseToken_Unique(t *testing.T) {
	first, _, err := security.GenerateSingleUseToken()
	assert.NoError(t, err)

	second, _, err := security.GenerateSingleUseToken()
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashSingleUseToken_Deterministic(t *testing.T) {
	assert.Equal(t,
		security.HashSingleUseToken("sometoken"),
		security.HashSingleUseToken("sometoken"),
	)
	assert.NotEqual(t,
		security.HashSingleUseToken("sometoken"),
		security.HashSingleUseToken("othertoken"),
	)
}
