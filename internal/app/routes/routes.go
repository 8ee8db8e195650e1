package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/controllers"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/middleware"
)

// Controllers groups every HTTP handler set
type Controllers struct {
	Auth       *controllers.AuthController
	Course     *controllers.CourseController
	Assignment *controllers.AssignmentController
	Enrollment *controllers.EnrollmentController
	Grade      *controllers.GradeController
	Department *controllers.DepartmentController
	Student    *controllers.StudentController
	Instructor *controllers.InstructorController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", c.Health.Health)
	v1.POST("/auth/login", c.Auth.Login)

	departments := v1.Group("/departments")
	{
		departments.GET("", c.Department.GetAllDepartments)
		departments.GET("/:id", c.Department.GetDepartmentByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleInstructor)
	studentSelf := authMiddleware.SelfOrAdmin(models.RoleStudent, "id")

	authenticated.POST("/auth/accounts", adminOnly, c.Auth.RegisterAccount)

	departmentsProtected := authenticated.Group("/departments", adminOnly)
	{
		departmentsProtected.POST("", c.Department.CreateDepartment)
		departmentsProtected.PUT("/:id", c.Department.UpdateDepartment)
		departmentsProtected.DELETE("/:id", c.Department.DeleteDepartment)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.GET("/:id", c.Course.GetCourse)
		courses.POST("", adminOnly, c.Course.CreateCourse)
		courses.PUT("/:id", adminOnly, c.Course.UpdateCourse)
		courses.DELETE("/:id", adminOnly, c.Course.DeleteCourse)
		courses.PATCH("/:id/availability", adminOnly, c.Course.SetAvailability)
		courses.GET("/:id/roster", staff, c.Course.Roster)
		courses.GET("/:id/roster.xlsx", staff, c.Course.RosterXLSX)
		courses.POST("/:id/enrollments/import", adminOnly, c.Course.ImportRoster)
		// the controller narrows instructors to courses they teach or taught until closure
		courses.PUT("/:id/grades/:studentId", staff, c.Grade.AssignGrades)
	}

	authenticated.POST("/assignments", adminOnly, c.Assignment.Assign)
	authenticated.GET("/enrollments", adminOnly, c.Enrollment.History)

	students := authenticated.Group("/students")
	{
		students.POST("", adminOnly, c.Student.CreateStudent)
		students.GET("", staff, c.Student.ListStudents)
		students.GET("/:id", studentSelf, c.Student.GetStudent)
		students.PUT("/:id", adminOnly, c.Student.UpdateStudent)
		students.DELETE("/:id", adminOnly, c.Student.DeleteStudent)
		students.POST("/:id/enrollments", studentSelf, c.Enrollment.Enroll)
		students.GET("/:id/courses", studentSelf, c.Student.Courses)
		students.GET("/:id/grades", studentSelf, c.Student.Grades)
	}

	instructors := authenticated.Group("/instructors")
	{
		instructors.GET("", c.Instructor.ListInstructors)
		instructors.GET("/:id", c.Instructor.GetInstructor)
		instructors.GET("/:id/courses", c.Instructor.Courses)
		instructors.POST("", adminOnly, c.Instructor.CreateInstructor)
		instructors.PUT("/:id", adminOnly, c.Instructor.UpdateInstructor)
		instructors.DELETE("/:id", adminOnly, c.Instructor.DeleteInstructor)
	}
}
