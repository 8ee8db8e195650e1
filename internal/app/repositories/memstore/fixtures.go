package memstore

import (
	"context"
	"sort"

	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
)

// PutDepartment stores or replaces a department
func (s *Store) PutDepartment(d models.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.departments[d.ID] = d
}

// PutCourse stores or replaces a course
func (s *Store) PutCourse(c models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Availability == "" {
		c.Availability = models.AvailabilityOpen
	}
	s.state.courses[c.ID] = c
}

// PutInstructor stores or replaces an instructor
func (s *Store) PutInstructor(i models.Instructor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.instructors[i.ID] = i
}

// PutStudent stores or replaces a student
func (s *Store) PutStudent(st models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.students[st.ID] = st
}

// PutEnrollment stores or replaces an enrollment without the admission checks
func (s *Store) PutEnrollment(e models.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.enrollments[pairKey{e.StudentID, e.CourseID}] = e
}

// PutGrade stores or replaces a grade
func (s *Store) PutGrade(g models.Grade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.grades[pairKey{g.StudentID, g.CourseID}] = g
}

// DeleteInstructor removes an instructor and every course assignment they
// hold, as the foreign key cascade does in PostgreSQL.
func (s *Store) DeleteInstructor(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.instructors, id)
	for courseID, t := range s.state.teaches {
		if t.InstructorID == id {
			delete(s.state.teaches, courseID)
		}
	}
}

// Course returns the committed course
func (s *Store) Course(id int64) (models.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.courses[id]
	return c, ok
}

// Teaches returns the committed assignment of a course
func (s *Store) Teaches(courseID int64) (models.Teaches, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.state.teaches[courseID]
	return t, ok
}

// Enrollment returns the committed enrollment of a pair
func (s *Store) Enrollment(studentID, courseID int64) (models.Enrollment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.state.enrollments[pairKey{studentID, courseID}]
	return e, ok
}

// EnrollmentCount returns the number of committed enrollments
func (s *Store) EnrollmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.enrollments)
}

// Grade returns the committed grade of a pair
func (s *Store) Grade(studentID, courseID int64) (models.Grade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.state.grades[pairKey{studentID, courseID}]
	return g, ok
}

// ListCourses implements repositories.Reader
func (s *Store) ListCourses(_ context.Context, f repositories.CourseFilter) ([]*models.CourseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.CourseSummary{}
	for _, c := range s.state.courses {
		if f.OnlyOpen && c.Availability != models.AvailabilityOpen {
			continue
		}
		t, assigned := s.state.teaches[c.ID]
		if f.InstructorID != 0 && (!assigned || t.InstructorID != f.InstructorID) {
			continue
		}
		sum := &models.CourseSummary{Course: c, DepartmentName: s.state.departments[c.DepartmentID].Name}
		if assigned {
			id := t.InstructorID
			name := s.state.instructors[id].Name
			sum.InstructorID, sum.InstructorName = &id, &name
		}
		for k := range s.state.enrollments {
			if k.courseID == c.ID {
				sum.StudentsEnrolled++
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCourse implements repositories.Reader
func (s *Store) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	c, ok := s.Course(id)
	if !ok {
		return nil, notFound("course", id)
	}
	return &c, nil
}

// GetStudent implements repositories.Reader
func (s *Store) GetStudent(_ context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.state.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	return &st, nil
}

// ListEnrollmentDetails implements repositories.Reader
func (s *Store) ListEnrollmentDetails(_ context.Context, f repositories.EnrollmentFilter) ([]*models.EnrollmentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.EnrollmentDetail{}
	for _, e := range s.state.enrollments {
		if (f.StudentID != 0 && e.StudentID != f.StudentID) ||
			(f.CourseID != 0 && e.CourseID != f.CourseID) ||
			(f.Status != "" && e.Status != f.Status) {
			continue
		}
		c := s.state.courses[e.CourseID]
		d := &models.EnrollmentDetail{
			Enrollment:   e,
			StudentName:  s.state.students[e.StudentID].Name,
			CourseTitle:  c.Title,
			CourseCode:   c.Code,
			Availability: string(c.Availability),
		}
		if t, ok := s.state.teaches[e.CourseID]; ok {
			name := s.state.instructors[t.InstructorID].Name
			d.InstructorName = &name
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnrollDate.Equal(out[j].EnrollDate) {
			return out[i].EnrollDate.After(out[j].EnrollDate)
		}
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out, nil
}

// ListCourseGrades implements repositories.Reader
func (s *Store) ListCourseGrades(_ context.Context, courseID int64) (map[int64]*models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[int64]*models.Grade{}
	for k, g := range s.state.grades {
		if k.courseID == courseID {
			g := g
			out[k.studentID] = &g
		}
	}
	return out, nil
}

// ListStudentGrades implements repositories.Reader
func (s *Store) ListStudentGrades(_ context.Context, studentID int64) ([]*models.StudentGrade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*models.StudentGrade{}
	for k, g := range s.state.grades {
		if k.studentID != studentID {
			continue
		}
		c := s.state.courses[k.courseID]
		out = append(out, &models.StudentGrade{Grade: g, CourseTitle: c.Title, CourseCode: c.Code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}
