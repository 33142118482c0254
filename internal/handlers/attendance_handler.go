package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/services"
	"github.com/schoolsync/student-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	service services.AttendanceService
}

func NewAttendanceHandler(service services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ATTENDANCE ENDPOINTS =====

// RecordAttendance upserts a day's attendance batch for the acting
// teacher or admin.
func (h *AttendanceHandler) RecordAttendance(c *gin.Context) {
	h.LogRequest(c, "Recording attendance")

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "user not authenticated"})
		return
	}

	var req models.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	if err := h.service.Record(c.Request.Context(), actorID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "attendance recorded",
		"count":   len(req.Records),
	})
}

// GetAttendance returns every record for the requested date, defaulting to
// today when no date is given.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "date must be in YYYY-MM-DD format"})
		return
	}

	records, err := h.service.GetForDate(c.Request.Context(), date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetAttendanceReport returns a student's records with a status summary,
// optionally bounded by start_date and end_date.
func (h *AttendanceHandler) GetAttendanceReport(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	report, err := h.service.Report(c.Request.Context(), c.Param("studentId"), startDate, endDate)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportAttendanceReport streams the same report as an xlsx workbook.
func (h *AttendanceHandler) ExportAttendanceReport(c *gin.Context) {
	h.LogRequest(c, "Exporting attendance report")

	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	studentID := c.Param("studentId")
	data, err := h.service.ExportReport(c.Request.Context(), studentID, startDate, endDate)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", studentID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseDateRange(c *gin.Context) (startDate, endDate *time.Time, err error) {
	if s := c.Query("start_date"); s != "" {
		t, parseErr := time.Parse("2006-01-02", s)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("start_date must be in YYYY-MM-DD format")
		}
		startDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, parseErr := time.Parse("2006-01-02", s)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("end_date must be in YYYY-MM-DD format")
		}
		endDate = &t
	}
	return startDate, endDate, nil
}
