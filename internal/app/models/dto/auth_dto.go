package dto

import "github.com/yigit/unitrack/internal/app/models"

// LoginRequest represents login credentials for one role
type LoginRequest struct {
	Role     models.RoleType `json:"role" binding:"required,oneof=ADMIN INSTRUCTOR STUDENT" example:"STUDENT"`
	Login    string          `json:"login" binding:"required" example:"alan.turing"`
	Password string          `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int             `json:"expiresIn" example:"3600"`
	Role        models.RoleType `json:"role" example:"STUDENT"`
	RefID       int64           `json:"refId,omitempty" example:"7"`
}

// RegisterAccountRequest creates a login for an existing student or instructor
type RegisterAccountRequest struct {
	Role     models.RoleType `json:"role" binding:"required,oneof=INSTRUCTOR STUDENT" example:"STUDENT"`
	RefID    int64           `json:"refId" binding:"required,gt=0" example:"7"`
	Login    string          `json:"login" binding:"required,login" example:"alan.turing"`
	Password string          `json:"password" binding:"required,min=8"`
}
