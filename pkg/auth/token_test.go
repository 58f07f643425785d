package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technest-labs/storefront-backend/pkg/config"
	"github.com/technest-labs/storefront-backend/pkg/enums"
	apperrors "github.com/technest-labs/storefront-backend/pkg/errors"
)

func newTestMinter(t *testing.T) *Minter {
	t.Helper()
	m, err := NewMinter(config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "storefront",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)
	return m
}

func TestMintAndParseAccessToken(t *testing.T) {
	m := newTestMinter(t)
	userID := uuid.New()

	raw, err := m.MintAccessToken(userID, enums.ActorRoleCustomer)
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, enums.ActorRoleCustomer, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	m := newTestMinter(t)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	raw, err := m.MintAccessToken(uuid.New(), enums.ActorRoleAdmin)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(raw)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	m := newTestMinter(t)
	raw, err := m.MintAccessToken(uuid.New(), enums.ActorRoleCustomer)
	require.NoError(t, err)

	other, err := NewMinter(config.JWTConfig{Secret: "other-secret", Issuer: "storefront", ExpirationMinutes: 15})
	require.NoError(t, err)

	_, err = other.ParseAccessToken(raw)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestNewMinterRequiresSecret(t *testing.T) {
	_, err := NewMinter(config.JWTConfig{})
	require.Error(t, err)
}
