package models

import "time"

// Account is a login for a student or instructor. Administrators are not
// stored here; they are verified against configuration.
type Account struct {
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         RoleType  `json:"role" db:"role"`
	RefID        int64     `json:"refId" db:"ref_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
