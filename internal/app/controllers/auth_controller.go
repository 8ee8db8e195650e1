// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
// @Summary Log in
// @Description Verifies the credentials for the given role and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      token,
		Timestamp: time.Now(),
	})
}

// RegisterAccount creates a login for a student or instructor
// @Summary Create an account
// @Description Creates a login for an existing student or instructor
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterAccountRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=models.Account} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Student or instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Login already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/accounts [post]
func (c *AuthController) RegisterAccount(ctx *gin.Context) {
	var req dto.RegisterAccountRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	account, err := c.authService.RegisterAccount(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      account,
		Timestamp: time.Now(),
	})
}
