package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
	"github.com/yigit/unitrack/internal/pkg/logger"
)

var instructorColumns = []string{"id", "name", "email", "salary", "faculty_type", "department_id"}

// InstructorRepository handles instructor database operations
type InstructorRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db DBTX) *InstructorRepository {
	return &InstructorRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts an instructor and sets its ID
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	sql, args, err := r.sb.Insert("instructors").
		Columns("name", "email", "salary", "faculty_type", "department_id").
		Values(instructor.Name, instructor.Email, instructor.Salary, instructor.FacultyType, instructor.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create instructor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&instructor.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return notFound("department", instructor.DepartmentID)
		}
		logger.Error().Err(err).Str("email", instructor.Email).Msg("Error executing create instructor query")
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// GetByID retrieves an instructor, taking the requested row lock
func (r *InstructorRepository) GetByID(ctx context.Context, id int64, lock LockMode) (*models.Instructor, error) {
	sql, args, err := withLock(r.sb.Select(instructorColumns...).
		From("instructors").
		Where(squirrel.Eq{"id": id}), lock).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	instructor := &models.Instructor{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&instructor.ID,
		&instructor.Name,
		&instructor.Email,
		&instructor.Salary,
		&instructor.FacultyType,
		&instructor.DepartmentID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("instructor", id)
		}
		return nil, fmt.Errorf("error getting instructor by ID: %w", err)
	}
	return instructor, nil
}

// List returns all instructors ordered by ID
func (r *InstructorRepository) List(ctx context.Context) ([]*models.Instructor, error) {
	sql, args, err := r.sb.Select(instructorColumns...).From("instructors").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	instructors := []*models.Instructor{}
	for rows.Next() {
		i := &models.Instructor{}
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Salary, &i.FacultyType, &i.DepartmentID); err != nil {
			return nil, fmt.Errorf("error scanning instructor row: %w", err)
		}
		instructors = append(instructors, i)
	}
	return instructors, rows.Err()
}

// Update replaces the record of an instructor
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	sql, args, err := r.sb.Update("instructors").
		Set("name", instructor.Name).
		Set("email", instructor.Email).
		Set("salary", instructor.Salary).
		Set("faculty_type", instructor.FacultyType).
		Set("department_id", instructor.DepartmentID).
		Where(squirrel.Eq{"id": instructor.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update instructor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return notFound("department", instructor.DepartmentID)
		}
		return fmt.Errorf("error updating instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("instructor", instructor.ID)
	}
	return nil
}

// Delete removes an instructor; their teaching assignments cascade
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("instructor", id)
	}
	return nil
}
