package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/events"
	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

// EventAttendanceRecorded is published once per committed attendance batch.
const EventAttendanceRecorded = "attendance.recorded"

type AttendanceRecordedEvent struct {
	Date        string `json:"date"`
	RecordCount int    `json:"record_count"`
	RecordedBy  string `json:"recorded_by"`
}

type attendanceService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAttendanceService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AttendanceService {
	return &attendanceService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Record upserts every item keyed by (student, date) inside one transaction,
// in input order. Either the whole batch commits or none of it does.
func (s *attendanceService) Record(ctx context.Context, actorID string, req *models.RecordAttendanceRequest) error {
	if req == nil || req.Date == "" || len(req.Records) == 0 {
		return NewValidationError("date and attendance records are required")
	}
	if errs := s.validator.Validate(req); errs != nil {
		return NewValidationError(errs.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError("date must be in YYYY-MM-DD format")
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, item := range req.Records {
			record := &models.AttendanceRecord{
				StudentID:    item.StudentID,
				Date:         date,
				Status:       item.Status,
				Remarks:      item.Remarks,
				RecordedByID: actorID,
			}
			if err := txRepo.Attendance().Upsert(ctx, nil, record); err != nil {
				return fmt.Errorf("failed to upsert attendance for student %s: %w", item.StudentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return NewInternalError("failed to record attendance", err)
	}

	s.logger.Info("attendance recorded",
		"date", req.Date,
		"records", len(req.Records),
		"recorded_by", actorID)

	if pubErr := s.publisher.Publish(ctx, EventAttendanceRecorded, AttendanceRecordedEvent{
		Date:        req.Date,
		RecordCount: len(req.Records),
		RecordedBy:  actorID,
	}); pubErr != nil {
		// The batch is committed; a publish failure must not fail the call.
		s.logger.Warn("failed to publish attendance event", "error", pubErr)
	}

	return nil
}

func (s *attendanceService) GetForDate(ctx context.Context, date time.Time) ([]*models.AttendanceRecord, error) {
	records, err := s.repo.Attendance().GetByDate(ctx, nil, date)
	if err != nil {
		return nil, NewInternalError("failed to fetch attendance", err)
	}
	return records, nil
}

// Report returns the student's records ascending by date plus a fold of
// status occurrence counts.
func (s *attendanceService) Report(ctx context.Context, studentID string, startDate, endDate *time.Time) (*AttendanceReportResponse, error) {
	records, err := s.repo.Attendance().GetByStudent(ctx, nil, repositories.AttendanceFilters{
		StudentID: studentID,
		DateFrom:  startDate,
		DateTo:    endDate,
	})
	if err != nil {
		return nil, NewInternalError("failed to fetch attendance report", err)
	}

	return &AttendanceReportResponse{
		Records: records,
		Summary: SummarizeAttendance(records),
	}, nil
}

// SummarizeAttendance folds records into status occurrence counts.
func SummarizeAttendance(records []*models.AttendanceRecord) map[models.AttendanceStatus]int {
	summary := make(map[models.AttendanceStatus]int)
	for _, record := range records {
		summary[record.Status]++
	}
	return summary
}

// ExportReport renders the same report as an xlsx workbook.
func (s *attendanceService) ExportReport(ctx context.Context, studentID string, startDate, endDate *time.Time) ([]byte, error) {
	report, err := s.Report(ctx, studentID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, NewInternalError("failed to create sheet", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Status", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewInternalError("failed to write header", err)
		}
	}

	for row, record := range report.Records {
		remarks := ""
		if record.Remarks != nil {
			remarks = *record.Remarks
		}
		values := []interface{}{
			record.Date.Format("2006-01-02"),
			string(record.Status),
			remarks,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, NewInternalError("failed to write row", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewInternalError("failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}
