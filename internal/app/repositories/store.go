package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/db"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

// Tx is the view of the record store inside one transaction. Every write
// made through it commits or rolls back together.
type Tx interface {
	GetCourse(ctx context.Context, id int64, lock LockMode) (*models.Course, error)
	SetCourseAvailability(ctx context.Context, id int64, availability models.Availability) error
	SetCourseLastInstructor(ctx context.Context, id, instructorID int64) error

	GetInstructor(ctx context.Context, id int64, lock LockMode) (*models.Instructor, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)

	// GetTeaches returns nil when the course has no instructor
	GetTeaches(ctx context.Context, courseID int64) (*models.Teaches, error)
	ReplaceTeaches(ctx context.Context, courseID, instructorID int64, at time.Time) (bool, error)
	DeleteTeaches(ctx context.Context, courseID int64) (bool, error)

	GetEnrollment(ctx context.Context, studentID, courseID int64, lock LockMode) (*models.Enrollment, error)
	ListCourseEnrollments(ctx context.Context, courseID int64, lock LockMode) ([]*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	UpdateEnrollmentStatus(ctx context.Context, studentID, courseID int64, status models.EnrollmentStatus) error

	// GetGrade returns nil when the pair has no grade
	GetGrade(ctx context.Context, studentID, courseID int64) (*models.Grade, error)
	UpsertGrade(ctx context.Context, g *models.Grade) error
}

// Store runs units of work atomically. Contention surfaces as
// apperrors.ErrConflict and connectivity loss as apperrors.ErrStoreUnavailable.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// PgStore is the PostgreSQL Store
type PgStore struct {
	db   *db.PostgresDB
	opts db.TxOptions
}

// NewPgStore creates a Store backed by the connection pool
func NewPgStore(database *db.PostgresDB, opts db.TxOptions) *PgStore {
	return &PgStore{db: database, opts: opts}
}

// WithTx implements Store
func (s *PgStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := s.db.WithTransaction(ctx, s.opts, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newPgTx(tx))
	})
	return dberrors.Classify(err)
}

type pgTx struct {
	courses     *CourseRepository
	instructors *InstructorRepository
	students    *StudentRepository
	teaches     *TeachesRepository
	enrollments *EnrollmentRepository
	grades      *GradeRepository
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{
		courses:     NewCourseRepository(tx),
		instructors: NewInstructorRepository(tx),
		students:    NewStudentRepository(tx),
		teaches:     NewTeachesRepository(tx),
		enrollments: NewEnrollmentRepository(tx),
		grades:      NewGradeRepository(tx),
	}
}

func (t *pgTx) GetCourse(ctx context.Context, id int64, lock LockMode) (*models.Course, error) {
	return t.courses.GetByID(ctx, id, lock)
}

func (t *pgTx) SetCourseAvailability(ctx context.Context, id int64, availability models.Availability) error {
	return t.courses.UpdateAvailability(ctx, id, availability)
}

func (t *pgTx) SetCourseLastInstructor(ctx context.Context, id, instructorID int64) error {
	return t.courses.UpdateLastInstructor(ctx, id, instructorID)
}

func (t *pgTx) GetInstructor(ctx context.Context, id int64, lock LockMode) (*models.Instructor, error) {
	return t.instructors.GetByID(ctx, id, lock)
}

func (t *pgTx) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return t.students.GetByID(ctx, id)
}

func (t *pgTx) GetTeaches(ctx context.Context, courseID int64) (*models.Teaches, error) {
	return t.teaches.GetByCourse(ctx, courseID)
}

func (t *pgTx) ReplaceTeaches(ctx context.Context, courseID, instructorID int64, at time.Time) (bool, error) {
	return t.teaches.Replace(ctx, courseID, instructorID, at)
}

func (t *pgTx) DeleteTeaches(ctx context.Context, courseID int64) (bool, error) {
	return t.teaches.DeleteByCourse(ctx, courseID)
}

func (t *pgTx) GetEnrollment(ctx context.Context, studentID, courseID int64, lock LockMode) (*models.Enrollment, error) {
	return t.enrollments.Get(ctx, studentID, courseID, lock)
}

func (t *pgTx) ListCourseEnrollments(ctx context.Context, courseID int64, lock LockMode) ([]*models.Enrollment, error) {
	return t.enrollments.ListByCourse(ctx, courseID, lock)
}

func (t *pgTx) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	return t.enrollments.Create(ctx, e)
}

func (t *pgTx) UpdateEnrollmentStatus(ctx context.Context, studentID, courseID int64, status models.EnrollmentStatus) error {
	return t.enrollments.UpdateStatus(ctx, studentID, courseID, status)
}

func (t *pgTx) GetGrade(ctx context.Context, studentID, courseID int64) (*models.Grade, error) {
	return t.grades.Get(ctx, studentID, courseID)
}

func (t *pgTx) UpsertGrade(ctx context.Context, g *models.Grade) error {
	return t.grades.Upsert(ctx, g)
}
