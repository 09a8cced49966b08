package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", domain.RoleAccountant, "secret", time.Minute, "recon")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "recon")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleAccountant, claims.Role)

	// no issuer check
	_, err = ParseAndValidateJWT(token, "secret", "")
	assert.NoError(t, err)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, err := GenerateJWT("user-1", domain.RoleAdmin, "secret", time.Minute, "recon")
	require.NoError(t, err)
	expired, err := GenerateJWT("user-1", domain.RoleAdmin, "secret", -time.Minute, "recon")
	require.NoError(t, err)
	noSubject, err := GenerateJWT("", domain.RoleAdmin, "secret", time.Minute, "recon")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret", "recon")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(valid, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = ParseAndValidateJWT(expired, "secret", "recon")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(noSubject, "secret", "recon")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT("not-a-token", "secret", "")
	assert.Error(t, err)
}
