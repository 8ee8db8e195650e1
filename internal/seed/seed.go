package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// DepartmentStore is the part of the department repository seeding needs
type DepartmentStore interface {
	Create(ctx context.Context, department *appModels.Department) error
	GetAll(ctx context.Context) ([]*appModels.Department, error)
}

// DefaultDepartments are created on an empty database
var DefaultDepartments = []appModels.Department{
	{Name: "Computer Science", Code: "CS"},
	{Name: "Mathematics", Code: "MATH"},
	{Name: "Physics", Code: "PHYS"},
}

// CreateDefaultData creates the default departments when none exist yet.
// A populated catalog is left untouched.
func CreateDefaultData(ctx context.Context, departments DepartmentStore, lgr zerolog.Logger) error {
	existing, err := departments.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Debug().Int("departments", len(existing)).Msg("Catalog already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default departments...")
	var finalErr error
	for _, d := range DefaultDepartments {
		department := d
		err := departments.Create(ctx, &department)
		if err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", department.Code).Msg("Error creating department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Str("code", department.Code).Int64("id", department.ID).Msg("Department ready")
	}
	return finalErr
}
