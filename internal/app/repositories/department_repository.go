package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db DBTX) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code").
		Values(department.Name, department.Code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&department.ID); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	var department models.Department
	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID, &department.Name, &department.Code)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("department", id)
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return &department, nil
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	sql, args, err := r.sb.Select("id", "name", "code").From("departments").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name, &department.Code); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// ExistsByNameOrCode checks if a department exists by name or code
func (r *DepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1 OR code = $2)`,
		name, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Update("departments").
		Set("name", department.Name).
		Set("code", department.Code).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return notFound("department", department.ID)
	}
	return nil
}

// Delete deletes a department by ID. Departments still referenced by
// courses, instructors or students are kept.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrDepartmentInUse
		}
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return notFound("department", id)
	}
	return nil
}
