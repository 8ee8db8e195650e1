package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

// TeachesRepository stores the course to instructor assignment
type TeachesRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewTeachesRepository creates a new TeachesRepository
func NewTeachesRepository(db DBTX) *TeachesRepository {
	return &TeachesRepository{
		db: db,
		sb: newBuilder(),
	}
}

// GetByCourse returns the assignment of a course, or nil when unassigned
func (r *TeachesRepository) GetByCourse(ctx context.Context, courseID int64) (*models.Teaches, error) {
	sql, args, err := r.sb.Select("course_id", "instructor_id", "assigned_at").
		From("teaches").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teaches query: %w", err)
	}

	t := &models.Teaches{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.CourseID, &t.InstructorID, &t.AssignedAt); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting teaches row: %w", err)
	}
	return t, nil
}

// Replace makes instructorID the only instructor of courseID. It reports
// whether a row was written; assigning the current instructor is a no-op.
func (r *TeachesRepository) Replace(ctx context.Context, courseID, instructorID int64, at time.Time) (bool, error) {
	sql, args, err := r.sb.Insert("teaches").
		Columns("course_id", "instructor_id", "assigned_at").
		Values(courseID, instructorID, at).
		Suffix(`ON CONFLICT (course_id) DO UPDATE
			SET instructor_id = EXCLUDED.instructor_id, assigned_at = EXCLUDED.assigned_at
			WHERE teaches.instructor_id <> EXCLUDED.instructor_id`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build replace teaches query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return false, notFound("course or instructor", courseID, instructorID)
		}
		return false, fmt.Errorf("error replacing teaches row: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByCourse removes the assignment of a course and reports whether
// one existed
func (r *TeachesRepository) DeleteByCourse(ctx context.Context, courseID int64) (bool, error) {
	sql, args, err := r.sb.Delete("teaches").Where(squirrel.Eq{"course_id": courseID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete teaches query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting teaches row: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
