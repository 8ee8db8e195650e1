package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories/memstore"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type engine struct {
	store      *memstore.Store
	lifecycle  CourseLifecycleService
	assignment AssignmentService
	grading    GradingService
	enrollment EnrollmentService
	report     ReportService
}

// newEngine wires the services over a store holding one course (1), two
// instructors (100, 101) and three students (10, 11, 12).
func newEngine() *engine {
	store := memstore.New()
	store.PutDepartment(models.Department{ID: 1, Name: "Computer Science", Code: "CS"})
	store.PutCourse(models.Course{ID: 1, DepartmentID: 1, Code: "CS101", Title: "Programming", Credits: 3})
	store.PutInstructor(models.Instructor{ID: 100, Name: "Ada", DepartmentID: 1})
	store.PutInstructor(models.Instructor{ID: 101, Name: "Grace", DepartmentID: 1})
	store.PutStudent(models.Student{ID: 10, Name: "Alan", DepartmentID: 1})
	store.PutStudent(models.Student{ID: 11, Name: "Barbara", DepartmentID: 1})
	store.PutStudent(models.Student{ID: 12, Name: "Claude", DepartmentID: 1})

	log := zerolog.Nop()
	policy := grading.DefaultPolicy()
	enrollment := NewEnrollmentService(store, fixedClock, log)
	return &engine{
		store:      store,
		lifecycle:  NewCourseLifecycleService(store, policy, log),
		assignment: NewAssignmentService(store, fixedClock, log),
		grading:    NewGradingService(store, policy, fixedClock, log),
		enrollment: enrollment,
		report:     NewReportService(store, enrollment, log),
	}
}

func scoresFor(total int) grading.Scores {
	// fills the assessments in order up to total
	s := grading.Scores{}
	take := func(max int) int {
		v := total
		if v > max {
			v = max
		}
		total -= v
		return v
	}
	s.Final = take(grading.MaxFinal)
	s.Mid = take(grading.MaxMid)
	s.Assignment1 = take(grading.MaxAssignment)
	s.Assignment2 = take(grading.MaxAssignment)
	s.Quiz1 = take(grading.MaxQuiz)
	s.Quiz2 = take(grading.MaxQuiz)
	return s
}
