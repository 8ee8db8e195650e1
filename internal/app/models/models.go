package models

// RoleType defines the role a principal logs in with
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleStudent    RoleType = "STUDENT"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// Availability is the lifecycle state of a course
type Availability string

const (
	AvailabilityOpen   Availability = "Open"
	AvailabilityClosed Availability = "Closed"
)

// Valid reports whether a is Open or Closed
func (a Availability) Valid() bool {
	return a == AvailabilityOpen || a == AvailabilityClosed
}

// EnrollmentStatus is the outcome of an enrollment
type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "InProgress"
	EnrollmentPassed     EnrollmentStatus = "Passed"
	EnrollmentFailed     EnrollmentStatus = "Failed"
)

// Final reports whether the status was set by a closure
func (s EnrollmentStatus) Final() bool {
	return s == EnrollmentPassed || s == EnrollmentFailed
}
