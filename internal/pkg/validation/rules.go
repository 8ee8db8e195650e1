package validation

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Course codes are a subject prefix followed by a number, e.g. CS101 or MATH2040A
	CourseCodePattern = `^[A-Za-z]{2,6}[0-9]{2,4}[A-Za-z]?$`

	// Department codes are letters only, e.g. CS or EE
	DepartmentCodePattern = `^[A-Za-z]{2,8}$`

	// Logins are lower-case letters, digits, dots, dashes and underscores
	LoginPattern = `^[a-z0-9._\-]{3,64}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode     *regexp.Regexp
	DepartmentCode *regexp.Regexp
	Login          *regexp.Regexp
}{
	CourseCode:     regexp.MustCompile(CourseCodePattern),
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
	Login:          regexp.MustCompile(LoginPattern),
}

// Tag names usable in binding struct tags
const (
	TagCourseCode     = "course_code"
	TagDepartmentCode = "department_code"
	TagLogin          = "login"
)

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// RegisterRules adds the custom rules to v
func RegisterRules(v *validator.Validate) error {
	rules := map[string]*regexp.Regexp{
		TagCourseCode:     CompiledPatterns.CourseCode,
		TagDepartmentCode: CompiledPatterns.DepartmentCode,
		TagLogin:          CompiledPatterns.Login,
	}
	for tag, re := range rules {
		if err := v.RegisterValidation(tag, patternRule(re)); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinRules adds the custom rules to gin's binding validator
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}
