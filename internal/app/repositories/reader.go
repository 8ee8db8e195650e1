package repositories

import (
	"context"

	"github.com/yigit/unitrack/internal/app/models"
)

// Reader serves the read-only listings and reports. Each call sees
// committed state only.
type Reader interface {
	ListCourses(ctx context.Context, f CourseFilter) ([]*models.CourseSummary, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListEnrollmentDetails(ctx context.Context, f EnrollmentFilter) ([]*models.EnrollmentDetail, error)
	ListCourseGrades(ctx context.Context, courseID int64) (map[int64]*models.Grade, error)
	ListStudentGrades(ctx context.Context, studentID int64) ([]*models.StudentGrade, error)
}

// PgReader implements Reader on the pool-bound repositories
type PgReader struct {
	repos *Repositories
}

// NewPgReader creates a Reader over repos
func NewPgReader(repos *Repositories) *PgReader {
	return &PgReader{repos: repos}
}

func (r *PgReader) ListCourses(ctx context.Context, f CourseFilter) ([]*models.CourseSummary, error) {
	return r.repos.CourseRepository.List(ctx, f)
}

func (r *PgReader) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return r.repos.CourseRepository.GetByID(ctx, id, LockNone)
}

func (r *PgReader) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return r.repos.StudentRepository.GetByID(ctx, id)
}

func (r *PgReader) ListEnrollmentDetails(ctx context.Context, f EnrollmentFilter) ([]*models.EnrollmentDetail, error) {
	return r.repos.EnrollmentRepository.ListDetails(ctx, f)
}

func (r *PgReader) ListCourseGrades(ctx context.Context, courseID int64) (map[int64]*models.Grade, error) {
	return r.repos.GradeRepository.ListByCourse(ctx, courseID)
}

func (r *PgReader) ListStudentGrades(ctx context.Context, studentID int64) ([]*models.StudentGrade, error) {
	return r.repos.GradeRepository.ListByStudent(ctx, studentID)
}
