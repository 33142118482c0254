package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/services"
	"github.com/schoolsync/student-service/internal/utils"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler provides logging and service-error mapping shared by all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c, h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error) {
	utils.FromContext(c, h.logger).Error(msg, "error", err)
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Every handler funnels errors through here so the mapping lives in one
// place.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	svcErr, ok := services.AsServiceError(err)
	if !ok {
		h.LogError(c, "unexpected error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	switch svcErr.Kind {
	case services.KindValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: svcErr.Message})
	case services.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: svcErr.Message})
	case services.KindForbidden:
		c.JSON(http.StatusForbidden, ErrorResponse{Message: svcErr.Message})
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Message: svcErr.Message})
	case services.KindConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Message: svcErr.Message})
	default:
		h.LogError(c, "internal service error", svcErr)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}
