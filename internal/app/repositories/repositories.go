package repositories

import (
	"github.com/yigit/unitrack/internal/db"
)

// Repositories holds the pool-bound repositories used outside a unit of
// work, plus the transactional Store.
type Repositories struct {
	CourseRepository     *CourseRepository
	DepartmentRepository *DepartmentRepository
	InstructorRepository *InstructorRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
	GradeRepository      *GradeRepository
	AccountRepository    *AccountRepository
	Store                Store
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB, txOpts db.TxOptions) *Repositories {
	pool := database.Pool
	return &Repositories{
		CourseRepository:     NewCourseRepository(pool),
		DepartmentRepository: NewDepartmentRepository(pool),
		InstructorRepository: NewInstructorRepository(pool),
		StudentRepository:    NewStudentRepository(pool),
		EnrollmentRepository: NewEnrollmentRepository(pool),
		GradeRepository:      NewGradeRepository(pool),
		AccountRepository:    NewAccountRepository(pool),
		Store:                NewPgStore(database, txOpts),
	}
}
