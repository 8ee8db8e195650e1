package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

// AccountRepository stores student and instructor logins
type AccountRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts an account
func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	sql, args, err := r.sb.Insert("user_accounts").
		Columns("login", "password_hash", "role", "ref_id", "created_at").
		Values(a.Login, a.PasswordHash, string(a.Role), a.RefID, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrAccountAlreadyExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByLogin looks up an account for the given role
func (r *AccountRepository) GetByLogin(ctx context.Context, login string, role models.RoleType) (*models.Account, error) {
	sql, args, err := r.sb.Select("login", "password_hash", "role", "ref_id", "created_at").
		From("user_accounts").
		Where(squirrel.Eq{"login": login, "role": string(role)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	a := &models.Account{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.Login, &a.PasswordHash, &a.Role, &a.RefID, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("account")
		}
		return nil, fmt.Errorf("error getting account: %w", err)
	}
	return a, nil
}
