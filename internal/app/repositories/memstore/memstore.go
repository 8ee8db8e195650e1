// Package memstore provides an in-memory record store with the same
// transactional contract as the PostgreSQL store. Transactions run one at a
// time against a cloned state that replaces the committed state only when
// the unit of work succeeds.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

type pairKey struct {
	studentID int64
	courseID  int64
}

type memoryState struct {
	departments map[int64]models.Department
	courses     map[int64]models.Course
	instructors map[int64]models.Instructor
	students    map[int64]models.Student
	teaches     map[int64]models.Teaches
	enrollments map[pairKey]models.Enrollment
	grades      map[pairKey]models.Grade
}

func newMemoryState() memoryState {
	return memoryState{
		departments: map[int64]models.Department{},
		courses:     map[int64]models.Course{},
		instructors: map[int64]models.Instructor{},
		students:    map[int64]models.Student{},
		teaches:     map[int64]models.Teaches{},
		enrollments: map[pairKey]models.Enrollment{},
		grades:      map[pairKey]models.Grade{},
	}
}

func (s memoryState) clone() memoryState {
	c := newMemoryState()
	for k, v := range s.departments {
		c.departments[k] = v
	}
	for k, v := range s.courses {
		v.Department = nil
		c.courses[k] = v
	}
	for k, v := range s.instructors {
		v.Department = nil
		c.instructors[k] = v
	}
	for k, v := range s.students {
		v.Department = nil
		c.students[k] = v
	}
	for k, v := range s.teaches {
		c.teaches[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range s.grades {
		c.grades[k] = v
	}
	return c
}

// Store is an in-memory repositories.Store and repositories.Reader
type Store struct {
	mu     sync.Mutex
	state  memoryState
	faults map[string]error
}

// New returns an empty store
func New() *Store {
	return &Store{
		state:  newMemoryState(),
		faults: map[string]error{},
	}
}

var (
	_ repositories.Store  = (*Store)(nil)
	_ repositories.Reader = (*Store)(nil)
)

// FailOn makes the named Tx method return err until cleared with a nil err.
// Earlier writes of the same transaction are then discarded.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, method)
		return
	}
	s.faults[method] = err
}

// WithTx implements repositories.Store
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{state: s.state.clone(), faults: s.faults}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

type memTx struct {
	state  memoryState
	faults map[string]error
}

func (t *memTx) fault(method string) error {
	return t.faults[method]
}

func notFound(entity string, id ...int64) error {
	return fmt.Errorf("%s %v: %w", entity, id, apperrors.ErrResourceNotFound)
}

func (t *memTx) GetCourse(_ context.Context, id int64, _ repositories.LockMode) (*models.Course, error) {
	if err := t.fault("GetCourse"); err != nil {
		return nil, err
	}
	c, ok := t.state.courses[id]
	if !ok {
		return nil, notFound("course", id)
	}
	return &c, nil
}

func (t *memTx) SetCourseAvailability(_ context.Context, id int64, availability models.Availability) error {
	if err := t.fault("SetCourseAvailability"); err != nil {
		return err
	}
	c, ok := t.state.courses[id]
	if !ok {
		return notFound("course", id)
	}
	c.Availability = availability
	t.state.courses[id] = c
	return nil
}

func (t *memTx) SetCourseLastInstructor(_ context.Context, id, instructorID int64) error {
	if err := t.fault("SetCourseLastInstructor"); err != nil {
		return err
	}
	c, ok := t.state.courses[id]
	if !ok {
		return notFound("course", id)
	}
	c.LastInstructorID = &instructorID
	t.state.courses[id] = c
	return nil
}

func (t *memTx) GetInstructor(_ context.Context, id int64, _ repositories.LockMode) (*models.Instructor, error) {
	if err := t.fault("GetInstructor"); err != nil {
		return nil, err
	}
	i, ok := t.state.instructors[id]
	if !ok {
		return nil, notFound("instructor", id)
	}
	return &i, nil
}

func (t *memTx) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	if err := t.fault("GetStudent"); err != nil {
		return nil, err
	}
	st, ok := t.state.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	return &st, nil
}

func (t *memTx) GetTeaches(_ context.Context, courseID int64) (*models.Teaches, error) {
	if err := t.fault("GetTeaches"); err != nil {
		return nil, err
	}
	row, ok := t.state.teaches[courseID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *memTx) ReplaceTeaches(_ context.Context, courseID, instructorID int64, at time.Time) (bool, error) {
	if err := t.fault("ReplaceTeaches"); err != nil {
		return false, err
	}
	if _, ok := t.state.courses[courseID]; !ok {
		return false, notFound("course", courseID)
	}
	if _, ok := t.state.instructors[instructorID]; !ok {
		return false, notFound("instructor", instructorID)
	}
	if cur, ok := t.state.teaches[courseID]; ok && cur.InstructorID == instructorID {
		return false, nil
	}
	t.state.teaches[courseID] = models.Teaches{CourseID: courseID, InstructorID: instructorID, AssignedAt: at}
	return true, nil
}

func (t *memTx) DeleteTeaches(_ context.Context, courseID int64) (bool, error) {
	if err := t.fault("DeleteTeaches"); err != nil {
		return false, err
	}
	if _, ok := t.state.teaches[courseID]; !ok {
		return false, nil
	}
	delete(t.state.teaches, courseID)
	return true, nil
}

func (t *memTx) GetEnrollment(_ context.Context, studentID, courseID int64, _ repositories.LockMode) (*models.Enrollment, error) {
	if err := t.fault("GetEnrollment"); err != nil {
		return nil, err
	}
	e, ok := t.state.enrollments[pairKey{studentID, courseID}]
	if !ok {
		return nil, notFound("enrollment", studentID, courseID)
	}
	return &e, nil
}

func (t *memTx) ListCourseEnrollments(_ context.Context, courseID int64, _ repositories.LockMode) ([]*models.Enrollment, error) {
	if err := t.fault("ListCourseEnrollments"); err != nil {
		return nil, err
	}
	out := []*models.Enrollment{}
	for _, e := range t.state.enrollments {
		if e.CourseID == courseID {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (t *memTx) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	if err := t.fault("CreateEnrollment"); err != nil {
		return err
	}
	if _, ok := t.state.students[e.StudentID]; !ok {
		return notFound("student", e.StudentID)
	}
	if _, ok := t.state.courses[e.CourseID]; !ok {
		return notFound("course", e.CourseID)
	}
	key := pairKey{e.StudentID, e.CourseID}
	if _, ok := t.state.enrollments[key]; ok {
		return apperrors.ErrDuplicateEnrollment
	}
	t.state.enrollments[key] = *e
	return nil
}

func (t *memTx) UpdateEnrollmentStatus(_ context.Context, studentID, courseID int64, status models.EnrollmentStatus) error {
	if err := t.fault("UpdateEnrollmentStatus"); err != nil {
		return err
	}
	key := pairKey{studentID, courseID}
	e, ok := t.state.enrollments[key]
	if !ok {
		return notFound("enrollment", studentID, courseID)
	}
	e.Status = status
	t.state.enrollments[key] = e
	return nil
}

func (t *memTx) GetGrade(_ context.Context, studentID, courseID int64) (*models.Grade, error) {
	if err := t.fault("GetGrade"); err != nil {
		return nil, err
	}
	g, ok := t.state.grades[pairKey{studentID, courseID}]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (t *memTx) UpsertGrade(_ context.Context, g *models.Grade) error {
	if err := t.fault("UpsertGrade"); err != nil {
		return err
	}
	key := pairKey{g.StudentID, g.CourseID}
	if _, ok := t.state.enrollments[key]; !ok {
		return notFound("enrollment", g.StudentID, g.CourseID)
	}
	t.state.grades[key] = *g
	return nil
}
