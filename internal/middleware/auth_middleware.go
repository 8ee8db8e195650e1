package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/pkg/auth"
)

// PrincipalKey is the gin context key of the authenticated principal
const PrincipalKey = "principal"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func abortForbidden(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		// Swagger UI sends the raw token without the Bearer prefix
		tokenString := strings.Trim(authHeader, "\"'")
		if strings.HasPrefix(tokenString, "Bearer ") {
			var err error
			if tokenString, err = auth.ExtractBearerToken(tokenString); err != nil {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
				return
			}
		} else if strings.Count(tokenString, ".") != 2 {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		principal, err := m.jwtService.ValidateAndExtractPrincipal(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by JWTAuth
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// RoleRequired lets the request through when the principal has one of roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		abortForbidden(c, "You don't have sufficient permissions for this operation")
	}
}

// SelfOrAdmin lets administrators through, and principals of role whose
// reference id equals the path parameter param.
func (m *AuthMiddleware) SelfOrAdmin(role models.RoleType, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		if principal.Role == models.RoleAdmin {
			c.Next()
			return
		}
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if principal.Role != role || err != nil || id != principal.RefID {
			abortForbidden(c, "You can only access your own records")
			return
		}
		c.Next()
	}
}
