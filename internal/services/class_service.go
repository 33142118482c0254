package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

type classService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	class := &models.Class{
		Name:        req.Name,
		Grade:       req.Grade,
		Description: req.Description,
	}
	if err := s.repo.Class().CreateClass(ctx, nil, class); err != nil {
		return nil, NewInternalError("failed to create class", err)
	}

	s.logger.Info("class created", "class_id", class.ID, "name", class.Name)
	return class, nil
}

func (s *classService) ListClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.repo.Class().ListClasses(ctx, nil)
	if err != nil {
		return nil, NewInternalError("failed to list classes", err)
	}
	return classes, nil
}

// CreateSection requires the class to exist; an assigned teacher, when
// given, must exist too.
func (s *classService) CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.Section, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	if _, err := s.repo.Class().GetClassByID(ctx, nil, req.ClassID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("class not found")
		}
		return nil, NewInternalError("failed to load class", err)
	}
	if req.TeacherID != nil {
		if _, err := s.repo.Teacher().GetByID(ctx, nil, *req.TeacherID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("teacher not found")
			}
			return nil, NewInternalError("failed to load teacher", err)
		}
	}

	section := &models.Section{
		Name:      req.Name,
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	}
	if err := s.repo.Class().CreateSection(ctx, nil, section); err != nil {
		return nil, NewInternalError("failed to create section", err)
	}

	created, err := s.repo.Class().GetSectionWithTeacher(ctx, nil, section.ID)
	if err != nil {
		return nil, NewInternalError("failed to load created section", err)
	}

	s.logger.Info("section created", "section_id", section.ID, "class_id", req.ClassID)
	return created, nil
}

func (s *classService) AssignStudent(ctx context.Context, studentID string, req *models.AssignSectionRequest) (*models.StudentProfile, error) {
	profile, err := s.repo.Student().GetByID(ctx, nil, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student not found")
		}
		return nil, NewInternalError("failed to load student", err)
	}

	if req.ClassID != nil {
		if _, err := s.repo.Class().GetClassByID(ctx, nil, *req.ClassID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("class not found")
			}
			return nil, NewInternalError("failed to load class", err)
		}
	}
	if req.SectionID != nil {
		if _, err := s.repo.Class().GetSectionByID(ctx, nil, *req.SectionID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewNotFoundError("section not found")
			}
			return nil, NewInternalError("failed to load section", err)
		}
	}

	// Omitted fields keep their current value; only what the request
	// carries is overwritten.
	if req.ClassID != nil {
		profile.ClassID = req.ClassID
	}
	if req.SectionID != nil {
		profile.SectionID = req.SectionID
	}
	if err := s.repo.Student().Update(ctx, nil, profile); err != nil {
		return nil, NewInternalError("failed to assign student", err)
	}

	updated, err := s.repo.Student().GetByIDWithDetails(ctx, nil, studentID)
	if err != nil {
		return nil, NewInternalError("failed to load student", err)
	}
	return updated, nil
}
