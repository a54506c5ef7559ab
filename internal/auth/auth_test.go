package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.Error(t, hasher.Compare(hash, "secret2"))
}

func TestTokens_IssueAndParse(t *testing.T) {
	t.Parallel()

	tokens, err := NewTokens("s3cr3t", time.Hour)
	require.NoError(t, err)

	token, err := tokens.Issue(domain.User{ID: "u-1", Name: "Ada", Admin: true})
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.True(t, claims.Admin)
}

func TestTokens_Rejects(t *testing.T) {
	t.Parallel()

	tokens, err := NewTokens("s3cr3t", time.Minute)
	require.NoError(t, err)
	other, err := NewTokens("another", time.Minute)
	require.NoError(t, err)

	foreign, err := other.Issue(domain.User{ID: "u-1"})
	require.NoError(t, err)
	_, err = tokens.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewTokens("s3cr3t", time.Minute)
	require.NoError(t, err)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue(domain.User{ID: "u-1"})
	require.NoError(t, err)
	_, err = tokens.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokens_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewTokens("", time.Minute)
	assert.Error(t, err)
	_, err = NewTokens("x", 0)
	assert.Error(t, err)
}
