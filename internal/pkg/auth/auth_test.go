package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func testJWT() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "unitrack.test"})
}

func quickHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testJWT()

	token, expiresIn, err := svc.GenerateToken(Principal{Login: "alan", Role: models.RoleStudent, RefID: 7})
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	p, err := svc.ValidateAndExtractPrincipal(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{Login: "alan", Role: models.RoleStudent, RefID: 7}, p)
}

func TestTokenRejected(t *testing.T) {
	svc := testJWT()

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := svc.GenerateToken(Principal{Login: "admin", Role: models.RoleAdmin})
		require.NoError(t, err)
		svc.now = time.Now

		_, err = svc.ValidateAndExtractPrincipal(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "unitrack.test"})
		token, _, err := other.GenerateToken(Principal{Login: "admin", Role: models.RoleAdmin})
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractPrincipal(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("student without ref id", func(t *testing.T) {
		token, _, err := svc.GenerateToken(Principal{Login: "ghost", Role: models.RoleStudent})
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractPrincipal(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateAndExtractPrincipal("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAdminVerifier(t *testing.T) {
	v := NewAdminVerifier("admin", quickHash(t, "s3cret"))
	ctx := context.Background()

	p, err := v.Verify(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "root", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = NewAdminVerifier("admin", "").Verify(ctx, "admin", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

type fakeAccounts map[string]*models.Account

func (f fakeAccounts) GetByLogin(_ context.Context, login string, role models.RoleType) (*models.Account, error) {
	a, ok := f[login]
	if !ok || a.Role != role {
		return nil, apperrors.ErrResourceNotFound
	}
	return a, nil
}

func TestAccountVerifier(t *testing.T) {
	accounts := fakeAccounts{
		"ada": {Login: "ada", PasswordHash: quickHash(t, "pw"), Role: models.RoleInstructor, RefID: 3},
	}
	ctx := context.Background()

	p, err := NewAccountVerifier(models.RoleInstructor, accounts).Verify(ctx, "ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, Principal{Login: "ada", Role: models.RoleInstructor, RefID: 3}, p)

	_, err = NewAccountVerifier(models.RoleStudent, accounts).Verify(ctx, "ada", "pw")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = NewAccountVerifier(models.RoleInstructor, accounts).Verify(ctx, "ada", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
