package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

func newTestJWT(secret string, now time.Time) *jwtService {
	svc := NewJWTService(secret, time.Hour).(*jwtService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Now()
	svc := newTestJWT("secret", now)

	token, err := svc.GenerateToken(42, constants.RolUsuarioOperador)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.PersonaID)
	assert.Equal(t, constants.RolUsuarioOperador, claims.Rol)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, time.Hour, svc.GetAccessTokenTTL())
}

func TestJWTService_Expired(t *testing.T) {
	now := time.Now()
	token, err := newTestJWT("secret", now).GenerateToken(1, constants.RolUsuarioAdministrador)
	require.NoError(t, err)

	_, err = newTestJWT("secret", now.Add(2*time.Hour)).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	now := time.Now()
	token, err := newTestJWT("secret", now).GenerateToken(1, constants.RolUsuarioConsulta)
	require.NoError(t, err)

	_, err = newTestJWT("other", now).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsNonHMAC(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"personaId": 1, "iss": issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWT("secret", time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSigningMethod)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := newTestJWT("secret", time.Now()).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
