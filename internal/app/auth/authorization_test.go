package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/unitrack/internal/pkg/auth"
)

type fakeCourses struct {
	byInstructor map[int64][]int64
	courses      map[int64]*models.Course
	err          error
}

func (f fakeCourses) ListCourses(_ context.Context, filter repositories.CourseFilter) ([]*models.CourseSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.CourseSummary
	for _, id := range f.byInstructor[filter.InstructorID] {
		out = append(out, &models.CourseSummary{Course: models.Course{ID: id}})
	}
	return out, nil
}

func (f fakeCourses) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.NewResourceNotFoundError("course not found")
}

func lastInstructor(id int64) *int64 { return &id }

func TestCanGrade(t *testing.T) {
	svc := NewAuthorizationService(fakeCourses{
		byInstructor: map[int64][]int64{100: {1, 3}},
		courses: map[int64]*models.Course{
			1: {ID: 1, Availability: models.AvailabilityOpen},
			2: {ID: 2, Availability: models.AvailabilityOpen},
			3: {ID: 3, Availability: models.AvailabilityOpen},
			4: {ID: 4, Availability: models.AvailabilityClosed, LastInstructorID: lastInstructor(100)},
			5: {ID: 5, Availability: models.AvailabilityOpen, LastInstructorID: lastInstructor(100)},
			6: {ID: 6, Availability: models.AvailabilityClosed},
		},
	}, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name      string
		principal pkgAuth.Principal
		courseID  int64
		want      bool
	}{
		{"admin any course", pkgAuth.Principal{Role: models.RoleAdmin}, 9, true},
		{"instructor own course", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 3, true},
		{"instructor other course", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 2, false},
		{"unassigned instructor", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 101}, 1, false},
		{"instructor of closed course", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 4, true},
		{"other instructor of closed course", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 101}, 4, false},
		{"last instructor after reopen", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 5, false},
		{"closed course never taught", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 6, false},
		{"unknown course", pkgAuth.Principal{Role: models.RoleInstructor, RefID: 100}, 99, false},
		{"instructor without ref", pkgAuth.Principal{Role: models.RoleInstructor}, 1, false},
		{"student", pkgAuth.Principal{Role: models.RoleStudent, RefID: 100}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanGrade(ctx, tt.principal, tt.courseID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateGrader(t *testing.T) {
	ctx := context.Background()
	instructor := pkgAuth.Principal{Login: "ada", Role: models.RoleInstructor, RefID: 100}

	svc := NewAuthorizationService(fakeCourses{}, zerolog.Nop())
	assert.ErrorIs(t, svc.ValidateGrader(ctx, instructor, 1), apperrors.ErrPermissionDenied)

	boom := errors.New("store down")
	svc = NewAuthorizationService(fakeCourses{err: boom}, zerolog.Nop())
	assert.ErrorIs(t, svc.ValidateGrader(ctx, instructor, 1), boom)
}
