package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// CatalogService manages departments, courses, instructors and students
type CatalogService interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error

	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	// UpdateCourse edits code, title, credits and department. Availability
	// goes through CourseLifecycleService.SetAvailability.
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, f repositories.CourseFilter) ([]*models.CourseSummary, error)
	DeleteCourse(ctx context.Context, id int64) error

	CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error)
	UpdateInstructor(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*models.Instructor, error)
	GetInstructor(ctx context.Context, id int64) (*models.Instructor, error)
	ListInstructors(ctx context.Context) ([]*models.Instructor, error)
	DeleteInstructor(ctx context.Context, id int64) error

	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type catalogServiceImpl struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos *repositories.Repositories, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		repos:  repos,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s ID must be positive", apperrors.ErrValidationFailed, name)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *catalogServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{Name: strings.TrimSpace(req.Name), Code: normalizeCode(req.Code)}
	if err := s.repos.DepartmentRepository.Create(ctx, department); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("departmentId", department.ID).Str("code", department.Code).Msg("Department created")
	return department, nil
}

func (s *catalogServiceImpl) UpdateDepartment(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	if err := validateID("department", id); err != nil {
		return nil, err
	}
	department := &models.Department{ID: id, Name: strings.TrimSpace(req.Name), Code: normalizeCode(req.Code)}
	if err := s.repos.DepartmentRepository.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *catalogServiceImpl) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	if err := validateID("department", id); err != nil {
		return nil, err
	}
	return s.repos.DepartmentRepository.GetByID(ctx, id)
}

func (s *catalogServiceImpl) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.repos.DepartmentRepository.GetAll(ctx)
}

func (s *catalogServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	if err := validateID("department", id); err != nil {
		return err
	}
	return s.repos.DepartmentRepository.Delete(ctx, id)
}

func (s *catalogServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		DepartmentID: req.DepartmentID,
		Code:         normalizeCode(req.Code),
		Title:        strings.TrimSpace(req.Title),
		Credits:      req.Credits,
		Availability: models.AvailabilityOpen,
	}
	if err := s.repos.CourseRepository.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

func (s *catalogServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := validateID("course", id); err != nil {
		return nil, err
	}
	if req.Availability != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"availability cannot be changed here, use PATCH /courses/{id}/availability").
			WithDetails(map[string]interface{}{"field": "availability"})
	}
	course := &models.Course{
		ID:           id,
		DepartmentID: req.DepartmentID,
		Code:         normalizeCode(req.Code),
		Title:        strings.TrimSpace(req.Title),
		Credits:      req.Credits,
	}
	if err := s.repos.CourseRepository.Update(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseId", id).Str("code", course.Code).Msg("Course updated")
	return course, nil
}

func (s *catalogServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if err := validateID("course", id); err != nil {
		return nil, err
	}
	course, err := s.repos.CourseRepository.GetByID(ctx, id, repositories.LockNone)
	if err != nil {
		return nil, err
	}
	if course.Department, err = s.repos.DepartmentRepository.GetByID(ctx, course.DepartmentID); err != nil {
		s.logger.Warn().Err(err).Int64("courseId", id).Msg("Course department not loaded")
	}
	return course, nil
}

func (s *catalogServiceImpl) ListCourses(ctx context.Context, f repositories.CourseFilter) ([]*models.CourseSummary, error) {
	return s.repos.CourseRepository.List(ctx, f)
}

func (s *catalogServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := validateID("course", id); err != nil {
		return err
	}
	if err := s.repos.CourseRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

func (s *catalogServiceImpl) CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error) {
	instructor := &models.Instructor{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Salary:       req.Salary,
		FacultyType:  req.FacultyType,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repos.InstructorRepository.Create(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

func (s *catalogServiceImpl) UpdateInstructor(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*models.Instructor, error) {
	if err := validateID("instructor", id); err != nil {
		return nil, err
	}
	instructor := &models.Instructor{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Salary:       req.Salary,
		FacultyType:  req.FacultyType,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repos.InstructorRepository.Update(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

func (s *catalogServiceImpl) GetInstructor(ctx context.Context, id int64) (*models.Instructor, error) {
	if err := validateID("instructor", id); err != nil {
		return nil, err
	}
	return s.repos.InstructorRepository.GetByID(ctx, id, repositories.LockNone)
}

func (s *catalogServiceImpl) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	return s.repos.InstructorRepository.List(ctx)
}

func (s *catalogServiceImpl) DeleteInstructor(ctx context.Context, id int64) error {
	if err := validateID("instructor", id); err != nil {
		return err
	}
	return s.repos.InstructorRepository.Delete(ctx, id)
}

func (s *catalogServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		DateOfBirth:  req.DateOfBirth,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repos.StudentRepository.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *catalogServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	if err := validateID("student", id); err != nil {
		return nil, err
	}
	student := &models.Student{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		DateOfBirth:  req.DateOfBirth,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repos.StudentRepository.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *catalogServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if err := validateID("student", id); err != nil {
		return nil, err
	}
	return s.repos.StudentRepository.GetByID(ctx, id)
}

func (s *catalogServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.repos.StudentRepository.List(ctx)
}

func (s *catalogServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateID("student", id); err != nil {
		return err
	}
	return s.repos.StudentRepository.Delete(ctx, id)
}
