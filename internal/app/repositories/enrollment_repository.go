package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

const constraintEnrollmentPKey = "enrollments_pkey"

// EnrollmentFilter narrows an enrollment history query. Zero values match all.
type EnrollmentFilter struct {
	StudentID int64
	CourseID  int64
	Status    models.EnrollmentStatus
}

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Get returns the enrollment of a student in a course
func (r *EnrollmentRepository) Get(ctx context.Context, studentID, courseID int64, lock LockMode) (*models.Enrollment, error) {
	sql, args, err := withLock(r.sb.Select("student_id", "course_id", "enroll_date", "status").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}), lock).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e := &models.Enrollment{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.StudentID, &e.CourseID, &e.EnrollDate, &e.Status); err != nil {
		if isNoRows(err) {
			return nil, notFound("enrollment", studentID, courseID)
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return e, nil
}

// ListByCourse returns every enrollment of a course ordered by student
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, lock LockMode) ([]*models.Enrollment, error) {
	sql, args, err := withLock(r.sb.Select("student_id", "course_id", "enroll_date", "status").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("student_id"), lock).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		e := &models.Enrollment{}
		if err := rows.Scan(&e.StudentID, &e.CourseID, &e.EnrollDate, &e.Status); err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Create inserts an enrollment. The primary key rejects a second row for the
// same pair even when two requests race.
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "enroll_date", "status").
		Values(e.StudentID, e.CourseID, e.EnrollDate, string(e.Status)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintEnrollmentPKey) {
			return apperrors.ErrDuplicateEnrollment
		}
		if dberrors.IsForeignKeyError(err) {
			return notFound("student or course", e.StudentID, e.CourseID)
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// UpdateStatus sets the outcome of an enrollment
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, studentID, courseID int64, status models.EnrollmentStatus) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", string(status)).
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("enrollment", studentID, courseID)
	}
	return nil
}

// ListDetails returns enrollments joined with student, course and
// instructor names, newest first
func (r *EnrollmentRepository) ListDetails(ctx context.Context, f EnrollmentFilter) ([]*models.EnrollmentDetail, error) {
	q := r.sb.Select(
		"e.student_id", "e.course_id", "e.enroll_date", "e.status",
		"s.name", "c.title", "c.code", "c.availability", "i.name",
	).
		From("enrollments e").
		Join("students s ON s.id = e.student_id").
		Join("courses c ON c.id = e.course_id").
		LeftJoin("teaches t ON t.course_id = e.course_id").
		LeftJoin("instructors i ON i.id = t.instructor_id").
		OrderBy("e.enroll_date DESC", "e.student_id", "e.course_id")
	if f.StudentID != 0 {
		q = q.Where(squirrel.Eq{"e.student_id": f.StudentID})
	}
	if f.CourseID != 0 {
		q = q.Where(squirrel.Eq{"e.course_id": f.CourseID})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"e.status": string(f.Status)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment details query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollment details: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.EnrollmentDetail, error) {
		d := &models.EnrollmentDetail{}
		err := row.Scan(
			&d.StudentID, &d.CourseID, &d.EnrollDate, &d.Status,
			&d.StudentName, &d.CourseTitle, &d.CourseCode, &d.Availability, &d.InstructorName,
		)
		return d, err
	})
}
