package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unitrack/internal/app/models"
)

var gradeColumns = []string{
	"student_id", "course_id", "assignment1", "assignment2", "quiz1", "quiz2",
	"mid", "final", "total_marks", "grade", "updated_at",
}

// GradeRepository handles grade database operations
type GradeRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db DBTX) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Get returns the grade of a student in a course, or nil when none exists
func (r *GradeRepository) Get(ctx context.Context, studentID, courseID int64) (*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grade: %w", err)
	}
	g, err := pgx.CollectExactlyOneRow(rows, scanGrade)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning grade: %w", err)
	}
	return g, nil
}

// Upsert writes the grade row for the pair, replacing any previous one
func (r *GradeRepository) Upsert(ctx context.Context, g *models.Grade) error {
	sql, args, err := r.sb.Insert("grades").
		Columns(gradeColumns...).
		Values(g.StudentID, g.CourseID, g.Assignment1, g.Assignment2, g.Quiz1, g.Quiz2,
			g.Mid, g.Final, g.TotalMarks, g.Letter, g.UpdatedAt).
		Suffix(`ON CONFLICT (student_id, course_id) DO UPDATE SET
			assignment1 = EXCLUDED.assignment1, assignment2 = EXCLUDED.assignment2,
			quiz1 = EXCLUDED.quiz1, quiz2 = EXCLUDED.quiz2,
			mid = EXCLUDED.mid, final = EXCLUDED.final,
			total_marks = EXCLUDED.total_marks, grade = EXCLUDED.grade,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert grade query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error upserting grade: %w", err)
	}
	return nil
}

// ListByCourse returns the grades of a course keyed by student
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID int64) (map[int64]*models.Grade, error) {
	sql, args, err := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	grades, err := pgx.CollectRows(rows, scanGrade)
	if err != nil {
		return nil, fmt.Errorf("error scanning grades: %w", err)
	}

	byStudent := make(map[int64]*models.Grade, len(grades))
	for _, g := range grades {
		byStudent[g.StudentID] = g
	}
	return byStudent, nil
}

// ListByStudent returns a student's grades with course display data
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentGrade, error) {
	sql, args, err := r.sb.Select(
		"g.student_id", "g.course_id", "g.assignment1", "g.assignment2", "g.quiz1", "g.quiz2",
		"g.mid", "g.final", "g.total_marks", "g.grade", "g.updated_at", "c.title", "c.code",
	).
		From("grades g").
		Join("courses c ON c.id = g.course_id").
		Where(squirrel.Eq{"g.student_id": studentID}).
		OrderBy("g.course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying student grades: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.StudentGrade, error) {
		sg := &models.StudentGrade{}
		err := row.Scan(
			&sg.StudentID, &sg.CourseID, &sg.Assignment1, &sg.Assignment2, &sg.Quiz1, &sg.Quiz2,
			&sg.Mid, &sg.Final, &sg.TotalMarks, &sg.Letter, &sg.UpdatedAt, &sg.CourseTitle, &sg.CourseCode,
		)
		return sg, err
	})
}

func scanGrade(row pgx.CollectableRow) (*models.Grade, error) {
	g := &models.Grade{}
	err := row.Scan(
		&g.StudentID, &g.CourseID, &g.Assignment1, &g.Assignment2, &g.Quiz1, &g.Quiz2,
		&g.Mid, &g.Final, &g.TotalMarks, &g.Letter, &g.UpdatedAt,
	)
	return g, err
}
