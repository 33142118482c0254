package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/events"
	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

// EventGradesRecorded is published once per committed grade batch.
const EventGradesRecorded = "grades.recorded"

type GradesRecordedEvent struct {
	ExamID     uint   `json:"exam_id"`
	GradeCount int    `json:"grade_count"`
	RecordedBy string `json:"recorded_by"`
}

type gradeService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewGradeService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) GradeService {
	return &gradeService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *gradeService) CreateExam(ctx context.Context, actorID string, req *models.CreateExamRequest) (*models.Exam, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	maxMarks := 100.0
	if req.MaxMarks != nil {
		maxMarks = *req.MaxMarks
	}

	exam := &models.Exam{
		Name:        req.Name,
		Term:        req.Term,
		ExamDate:    req.ExamDate,
		ClassID:     req.ClassID,
		SectionID:   req.SectionID,
		MaxMarks:    maxMarks,
		CreatedByID: actorID,
	}
	if err := s.repo.Exam().Create(ctx, nil, exam); err != nil {
		return nil, NewInternalError("failed to create exam", err)
	}

	s.logger.Info("exam created", "exam_id", exam.ID, "name", exam.Name, "created_by", actorID)
	return exam, nil
}

// RecordGrades upserts every item keyed by (student, exam, subject) inside
// one transaction, in input order. GPA is derived here, at write time.
func (s *gradeService) RecordGrades(ctx context.Context, actorID string, req *models.RecordGradesRequest) error {
	if req == nil || req.ExamID == 0 || len(req.Grades) == 0 {
		return NewValidationError("exam_id and grades array are required")
	}
	if errs := s.validator.Validate(req); errs != nil {
		return NewValidationError(errs.Error())
	}

	if _, err := s.repo.Exam().GetByID(ctx, nil, req.ExamID); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("exam not found")
		}
		return NewInternalError("failed to load exam", err)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, item := range req.Grades {
			record := &models.GradeRecord{
				StudentID:   item.StudentID,
				ExamID:      req.ExamID,
				Subject:     item.Subject,
				ScoredMarks: item.ScoredMarks,
				TotalMarks:  item.TotalMarks,
				Grade:       item.Grade,
				GPA:         DeriveGPA(item.ScoredMarks, item.TotalMarks),
				Remarks:     item.Remarks,
			}
			if err := txRepo.Grade().Upsert(ctx, nil, record); err != nil {
				return fmt.Errorf("failed to upsert grade for student %s subject %s: %w", item.StudentID, item.Subject, err)
			}
		}
		return nil
	})
	if err != nil {
		return NewInternalError("failed to record grades", err)
	}

	s.logger.Info("grades recorded",
		"exam_id", req.ExamID,
		"grades", len(req.Grades),
		"recorded_by", actorID)

	if pubErr := s.publisher.Publish(ctx, EventGradesRecorded, GradesRecordedEvent{
		ExamID:     req.ExamID,
		GradeCount: len(req.Grades),
		RecordedBy: actorID,
	}); pubErr != nil {
		s.logger.Warn("failed to publish grades event", "error", pubErr)
	}

	return nil
}

// DeriveGPA computes round(scored/total*4, 2), or nil when total marks is
// zero or absent. Stored on the row, never recomputed at read time.
func DeriveGPA(scoredMarks, totalMarks float64) *float64 {
	if totalMarks == 0 {
		return nil
	}
	gpa := round2(scoredMarks / totalMarks * 4)
	return &gpa
}

// ReportCard fails when the student has no grade rows. The average folds a
// null GPA as 0 into the sum while the divisor counts every row; this
// matches the recorded product behavior.
func (s *gradeService) ReportCard(ctx context.Context, studentID string) (*ReportCardResponse, error) {
	grades, err := s.repo.Grade().GetByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, NewInternalError("failed to fetch grades", err)
	}
	if len(grades) == 0 {
		return nil, NewNotFoundError("no grades found for this student")
	}

	return &ReportCardResponse{
		Grades:     grades,
		AverageGPA: AverageGPA(grades),
	}, nil
}

// AverageGPA is the arithmetic mean of stored GPA values with null as 0,
// rounded to 2 decimals.
func AverageGPA(grades []*models.GradeRecord) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range grades {
		if g.GPA != nil {
			sum += *g.GPA
		}
	}
	return round2(sum / float64(len(grades)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
