package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-api/internal/domain"
)

func TestNewTokenServiceDefaultsTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
	assert.Equal(t, 7*24*time.Hour, DefaultTokenTTL)
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, expiresAt, err := svc.Issue(42, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestIssueExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", DefaultTokenTTL)
	svc.now = func() time.Time { return issued }

	token, expiresAt, err := svc.Issue(1, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour - time.Minute) }
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret-1", time.Hour).Issue(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenService("secret-2", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{"not-a-token", "a.b.c", strings.Repeat("x", 64)} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, token)
	}

	_, err := svc.Verify("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Email:  "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenService("secret", time.Hour).Verify(unsigned)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
