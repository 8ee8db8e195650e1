package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
	"github.com/yigit/unitrack/internal/pkg/logger"
)

const constraintCourseCode = "courses_code_key"

var courseColumns = []string{"id", "department_id", "code", "title", "credits", "availability", "last_instructor_id"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a course and sets its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("department_id", "code", "title", "credits", "availability").
		Values(course.DepartmentID, course.Code, course.Title, course.Credits, string(course.Availability)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintCourseCode) {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyError(err) {
			return notFound("department", course.DepartmentID)
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course, taking the requested row lock
func (r *CourseRepository) GetByID(ctx context.Context, id int64, lock LockMode) (*models.Course, error) {
	sql, args, err := withLock(r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}), lock).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID,
		&course.DepartmentID,
		&course.Code,
		&course.Title,
		&course.Credits,
		&course.Availability,
		&course.LastInstructorID,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("course", id)
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// CourseFilter narrows a course listing. Zero values match all.
type CourseFilter struct {
	OnlyOpen     bool
	InstructorID int64
}

// List returns courses with department, instructor and enrolled count
func (r *CourseRepository) List(ctx context.Context, f CourseFilter) ([]*models.CourseSummary, error) {
	q := r.sb.Select(
		"c.id", "c.department_id", "c.code", "c.title", "c.credits", "c.availability", "c.last_instructor_id",
		"COALESCE(d.name, '')", "t.instructor_id", "i.name", "COUNT(e.student_id)",
	).
		From("courses c").
		LeftJoin("departments d ON d.id = c.department_id").
		LeftJoin("teaches t ON t.course_id = c.id").
		LeftJoin("instructors i ON i.id = t.instructor_id").
		LeftJoin("enrollments e ON e.course_id = c.id").
		GroupBy("c.id", "d.name", "t.instructor_id", "i.name").
		OrderBy("c.id")
	if f.OnlyOpen {
		q = q.Where(squirrel.Eq{"c.availability": string(models.AvailabilityOpen)})
	}
	if f.InstructorID != 0 {
		q = q.Where(squirrel.Eq{"t.instructor_id": f.InstructorID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.CourseSummary{}
	for rows.Next() {
		c := &models.CourseSummary{}
		if err := rows.Scan(
			&c.ID, &c.DepartmentID, &c.Code, &c.Title, &c.Credits, &c.Availability, &c.LastInstructorID,
			&c.DepartmentName, &c.InstructorID, &c.InstructorName, &c.StudentsEnrolled,
		); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Update changes the descriptive fields of a course and loads its
// lifecycle columns. Availability is left to UpdateAvailability.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("department_id", course.DepartmentID).
		Set("code", course.Code).
		Set("title", course.Title).
		Set("credits", course.Credits).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING availability, last_instructor_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.Availability, &course.LastInstructorID); err != nil {
		switch {
		case isNoRows(err):
			return notFound("course", course.ID)
		case dberrors.IsDuplicateConstraintError(err, constraintCourseCode):
			return apperrors.ErrCourseAlreadyExists
		case dberrors.IsForeignKeyError(err):
			return notFound("department", course.DepartmentID)
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// UpdateAvailability sets the lifecycle flag of a course
func (r *CourseRepository) UpdateAvailability(ctx context.Context, id int64, availability models.Availability) error {
	sql, args, err := r.sb.Update("courses").
		Set("availability", string(availability)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update availability query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("course", id)
	}
	return nil
}

// UpdateLastInstructor records the instructor a closure unassigned
func (r *CourseRepository) UpdateLastInstructor(ctx context.Context, id, instructorID int64) error {
	sql, args, err := r.sb.Update("courses").
		Set("last_instructor_id", instructorID).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last instructor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course last instructor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("course", id)
	}
	return nil
}

// Delete removes a course; assignments, enrollments and grades cascade
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("course", id)
	}
	return nil
}
