package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// CredentialVerifier checks a login and password for one role
type CredentialVerifier interface {
	Verify(ctx context.Context, login, password string) (Principal, error)
}

// AdminVerifier checks the single administrator configured for the
// deployment
type AdminVerifier struct {
	username     string
	passwordHash string
}

// NewAdminVerifier creates an AdminVerifier. An empty hash disables
// administrator login.
func NewAdminVerifier(username, passwordHash string) *AdminVerifier {
	return &AdminVerifier{username: username, passwordHash: passwordHash}
}

// Verify implements CredentialVerifier
func (v *AdminVerifier) Verify(_ context.Context, login, password string) (Principal, error) {
	if v.passwordHash == "" {
		return Principal{}, apperrors.ErrInvalidCredentials
	}
	nameOK := subtle.ConstantTimeCompare([]byte(login), []byte(v.username)) == 1
	if !CheckPassword(v.passwordHash, password) || !nameOK {
		return Principal{}, apperrors.ErrInvalidCredentials
	}
	return Principal{Login: login, Role: models.RoleAdmin}, nil
}

// AccountLookup finds a stored account
type AccountLookup interface {
	GetByLogin(ctx context.Context, login string, role models.RoleType) (*models.Account, error)
}

// AccountVerifier checks student or instructor logins against stored accounts
type AccountVerifier struct {
	role     models.RoleType
	accounts AccountLookup
}

// NewAccountVerifier creates an AccountVerifier for role
func NewAccountVerifier(role models.RoleType, accounts AccountLookup) *AccountVerifier {
	return &AccountVerifier{role: role, accounts: accounts}
}

// Verify implements CredentialVerifier
func (v *AccountVerifier) Verify(ctx context.Context, login, password string) (Principal, error) {
	account, err := v.accounts.GetByLogin(ctx, login, v.role)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return Principal{}, apperrors.ErrInvalidCredentials
		}
		return Principal{}, err
	}
	if !CheckPassword(account.PasswordHash, password) {
		return Principal{}, apperrors.ErrInvalidCredentials
	}
	return Principal{Login: account.Login, Role: account.Role, RefID: account.RefID}, nil
}
