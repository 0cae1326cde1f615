package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "carlos@example.com", "cliente", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.Equal(t, "cliente", role)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "carlos@example.com", "cliente", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenIsRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "carlos@example.com", "cliente", time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractIDFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 404, StatusFor(ErrNotFound))
	assert.Equal(t, 403, StatusFor(ErrNotOwner))
	assert.Equal(t, 409, StatusFor(ErrNotOpen))
	assert.Equal(t, 409, StatusFor(ErrDuplicateBid))
	assert.Equal(t, 409, StatusFor(ErrDuplicateReview))
	assert.Equal(t, 500, StatusFor(assert.AnError))
}
