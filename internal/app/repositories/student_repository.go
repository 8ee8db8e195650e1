package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
	"github.com/yigit/unitrack/internal/pkg/logger"
)

var studentColumns = []string{"id", "name", "email", "dob", "department_id"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a student and sets its ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "email", "dob", "department_id").
		Values(student.Name, student.Email, student.DateOfBirth, student.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return notFound("department", student.DepartmentID)
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.DateOfBirth,
		&student.DepartmentID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("student", id)
		}
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// Update replaces the record of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("email", student.Email).
		Set("dob", student.DateOfBirth).
		Set("department_id", student.DepartmentID).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return notFound("department", student.DepartmentID)
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("student", student.ID)
	}
	return nil
}

// List returns all students ordered by ID
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.DateOfBirth, &s.DepartmentID); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Delete removes a student; enrollments and grades cascade
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("student", id)
	}
	return nil
}
