package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/services"
)

// TokenCookieName is the HTTP-only cookie carrying the session token.
const TokenCookieName = "token"

// JWTAuthMiddleware authenticates requests with a signed token carried in
// the session cookie or, failing that, a Bearer header. The user is loaded
// fresh on every request, so deleting a user revokes access immediately.
type JWTAuthMiddleware struct {
	tokens   services.TokenService
	userRepo repositories.UserRepository
}

func NewJWTAuthMiddleware(tokens services.TokenService, userRepo repositories.UserRepository) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// AuthMiddleware returns a Gin middleware enforcing authentication.
func (am *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authentication required"})
			c.Abort()
			return
		}

		userID, err := am.tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
			c.Abort()
			return
		}

		user, err := am.userRepo.GetByIDWithProfiles(c.Request.Context(), nil, userID)
		if err != nil {
			// A valid token for a missing user is a revoked session.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "user no longer exists"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// extractToken prefers the session cookie over the Authorization header.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// RequireRoleMiddleware checks the caller holds one of the required roles.
// Admins pass every role check.
func (am *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRoleFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "user role not found in context"})
			c.Abort()
			return
		}

		allowed := false
		for _, required := range requiredRoles {
			if role == required || role == models.RoleAdmin {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SetTokenCookie attaches the session cookie on login. The max-age must
// match the token lifetime so cookie and token expire together.
func SetTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, token, maxAge, "/", "", false, true)
}

// ClearTokenCookie expires the session cookie on logout.
func ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", false, true)
}

// GetUserFromContext extracts the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	v, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}
	return user, nil
}

// GetUserIDFromContext extracts the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}
	id, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}
	return id, nil
}

// GetUserRoleFromContext extracts the authenticated user's role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	v, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}
	role, ok := v.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}
	return role, nil
}
