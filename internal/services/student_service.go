package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

type studentService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create builds the STUDENT-role user and its profile in one transaction.
// A duplicate email aborts the whole thing; no partial row survives.
func (s *studentService) Create(ctx context.Context, req *models.CreateStudentRequest) (*models.StudentProfile, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		Role:      models.RoleStudent,
		Phone:     req.Phone,
	}
	profile := &models.StudentProfile{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		Age:            req.Age,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		ContactAddress: req.ContactAddress,
		GuardianName:   req.GuardianName,
		GuardianPhone:  req.GuardianPhone,
		GuardianEmail:  req.GuardianEmail,
		Photo:          req.Photo,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if req.ClassID != nil {
			if _, err := txRepo.Class().GetClassByID(ctx, nil, *req.ClassID); err != nil {
				return err
			}
		}
		if req.SectionID != nil {
			if _, err := txRepo.Class().GetSectionByID(ctx, nil, *req.SectionID); err != nil {
				return err
			}
		}
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			return err
		}
		return txRepo.Student().Create(ctx, nil, profile)
	})
	if err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError("user with this email already exists")
		}
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("class or section not found")
		}
		return nil, NewInternalError("failed to create student", err)
	}

	s.logger.Info("student created", "student_id", profile.ID, "user_id", user.ID)

	created, err := s.repo.Student().GetByIDWithDetails(ctx, nil, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to load created student", err)
	}
	return created, nil
}

func (s *studentService) Get(ctx context.Context, id string) (*models.StudentProfile, error) {
	profile, err := s.repo.Student().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student not found")
		}
		return nil, NewInternalError("failed to load student", err)
	}
	return profile, nil
}

func (s *studentService) List(ctx context.Context, params ListStudentsParams) (*StudentListResponse, error) {
	filters := params.toFilters()

	students, total, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, NewInternalError("failed to list students", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return &StudentListResponse{
		Students: students,
		Total:    total,
		Page:     page,
		Size:     filters.Limit,
	}, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.StudentProfile, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	profile, err := s.repo.Student().GetByIDWithDetails(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student not found")
		}
		return nil, NewInternalError("failed to load student", err)
	}

	user := profile.User
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.ContactAddress != nil {
		profile.ContactAddress = req.ContactAddress
	}
	if req.GuardianName != nil {
		profile.GuardianName = req.GuardianName
	}
	if req.GuardianPhone != nil {
		profile.GuardianPhone = req.GuardianPhone
	}
	if req.GuardianEmail != nil {
		profile.GuardianEmail = req.GuardianEmail
	}
	if req.Photo != nil {
		profile.Photo = req.Photo
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Update(ctx, nil, user); err != nil {
			return err
		}
		// Avoid re-saving loaded relations alongside the profile row.
		updated := *profile
		updated.User = nil
		updated.Class = nil
		updated.Section = nil
		updated.Documents = nil
		return txRepo.Student().Update(ctx, nil, &updated)
	})
	if err != nil {
		return nil, NewInternalError("failed to update student", err)
	}
	return profile, nil
}

// Delete removes the profile, its documents and the owning user atomically.
func (s *studentService) Delete(ctx context.Context, id string) error {
	profile, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("student not found")
		}
		return NewInternalError("failed to load student", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Student().DeleteDocuments(ctx, nil, id); err != nil {
			return err
		}
		if err := txRepo.Student().Delete(ctx, nil, id); err != nil {
			return err
		}
		return txRepo.User().Delete(ctx, nil, profile.UserID)
	})
	if err != nil {
		return NewInternalError("failed to delete student", err)
	}

	s.logger.Info("student deleted", "student_id", id, "user_id", profile.UserID)
	return nil
}
