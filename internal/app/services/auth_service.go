package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/auth"
)

// AuthService handles login and account registration
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterAccount(ctx context.Context, req *dto.RegisterAccountRequest) (*models.Account, error)
}

// AccountCreator persists new accounts
type AccountCreator interface {
	Create(ctx context.Context, a *models.Account) error
}

type authServiceImpl struct {
	verifiers  map[models.RoleType]auth.CredentialVerifier
	jwtService *auth.JWTService
	store      repositories.Store
	accounts   AccountCreator
	now        Clock
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service. verifiers selects the
// credential check for each role.
func NewAuthService(
	verifiers map[models.RoleType]auth.CredentialVerifier,
	jwtService *auth.JWTService,
	store repositories.Store,
	accounts AccountCreator,
	now Clock,
	logger zerolog.Logger,
) AuthService {
	if now == nil {
		now = utcNow
	}
	return &authServiceImpl{
		verifiers:  verifiers,
		jwtService: jwtService,
		store:      store,
		accounts:   accounts,
		now:        now,
		logger:     logger.With().Str("component", "auth").Logger(),
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	verifier, ok := s.verifiers[req.Role]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	principal, err := verifier.Verify(ctx, strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		s.logger.Warn().Str("login", req.Login).Str("role", string(req.Role)).Msg("Login rejected")
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateToken(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("login", principal.Login).Str("role", string(principal.Role)).Msg("User logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        principal.Role,
		RefID:       principal.RefID,
	}, nil
}

func (s *authServiceImpl) RegisterAccount(ctx context.Context, req *dto.RegisterAccountRequest) (*models.Account, error) {
	// the referenced person must exist before a login is created for them
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		switch req.Role {
		case models.RoleStudent:
			_, err := tx.GetStudent(ctx, req.RefID)
			return err
		case models.RoleInstructor:
			_, err := tx.GetInstructor(ctx, req.RefID, repositories.LockNone)
			return err
		}
		return apperrors.NewBadRequestError("accounts can only be created for students and instructors")
	})
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Login:        strings.TrimSpace(req.Login),
		PasswordHash: hash,
		Role:         req.Role,
		RefID:        req.RefID,
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("login", account.Login).Str("role", string(account.Role)).Int64("refId", account.RefID).
		Msg("Account registered")
	return account, nil
}
