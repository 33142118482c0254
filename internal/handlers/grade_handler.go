package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/services"
	"github.com/schoolsync/student-service/internal/utils"
)

type GradeHandler struct {
	BaseHandler
	service services.GradeService
}

func NewGradeHandler(service services.GradeService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== EXAM & GRADE ENDPOINTS =====

func (h *GradeHandler) CreateExam(c *gin.Context) {
	h.LogRequest(c, "Creating exam")

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "user not authenticated"})
		return
	}

	var req models.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	exam, err := h.service.CreateExam(c.Request.Context(), actorID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// RecordGrades upserts a grade batch for one exam.
func (h *GradeHandler) RecordGrades(c *gin.Context) {
	h.LogRequest(c, "Recording grades")

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "user not authenticated"})
		return
	}

	var req models.RecordGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	if err := h.service.RecordGrades(c.Request.Context(), actorID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "grades recorded",
		"count":   len(req.Grades),
	})
}

// GetReportCard returns a student's grade rows plus the average GPA.
func (h *GradeHandler) GetReportCard(c *gin.Context) {
	report, err := h.service.ReportCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
