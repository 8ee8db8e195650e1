package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Course     string `validate:"course_code"`
	Department string `validate:"department_code"`
	Login      string `validate:"login"`
}

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	tests := []struct {
		name  string
		input sample
		valid bool
	}{
		{"valid", sample{"CS101", "CS", "alan.turing"}, true},
		{"valid with suffix", sample{"MATH2040A", "MATH", "ada_l"}, true},
		{"course without number", sample{"CS", "CS", "alan"}, false},
		{"department with digits", sample{"CS101", "C5", "alan"}, false},
		{"login with upper case", sample{"CS101", "CS", "Alan"}, false},
		{"login too short", sample{"CS101", "CS", "al"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
