package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/services"
	"github.com/schoolsync/student-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service      services.AuthService
	tokens       services.TokenService
	cookieMaxAge int
}

func NewAuthHandler(service services.AuthService, tokens services.TokenService, tokenTTL time.Duration, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		tokens:       tokens,
		cookieMaxAge: int(tokenTTL.Seconds()),
	}
}

// ===== AUTH ENDPOINTS =====

// Register creates a new user account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials, sets the session cookie and returns the user
// with profile extensions. The token is also included in the body for
// non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.LogError(c, "failed to issue token", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	SetTokenCookie(c, token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Profile returns the authenticated user with profile extensions.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "user not authenticated"})
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ===== USER MANAGEMENT (admin) =====

func (h *AuthHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	var rolePtr *models.UserRole
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		if !models.ValidRole(role) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid role filter"})
			return
		}
		rolePtr = &role
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	users, total, err := h.service.ListUsers(c.Request.Context(), rolePtr, c.Query("search"), page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	h.LogRequest(c, "Updating user")

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	h.LogRequest(c, "Deleting user")

	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
