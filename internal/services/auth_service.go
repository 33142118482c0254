package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

type authService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a new user. Route-level middleware restricts this to
// admins; the service only enforces data rules.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*UserResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}
	if !models.ValidRole(req.Role) {
		return nil, NewValidationError("invalid role")
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
		Role:      req.Role,
		Phone:     req.Phone,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError("user with this email already exists")
		}
		return nil, NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return NewUserResponse(user), nil
}

// Login verifies credentials and returns the user with profile extensions.
// The handler attaches the token cookie.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, strings.ToLower(req.Email))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewUnauthenticatedError("invalid email or password")
		}
		return nil, NewInternalError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NewUnauthenticatedError("invalid email or password")
	}

	full, err := s.repo.User().GetByIDWithProfiles(ctx, nil, user.ID)
	if err != nil {
		return nil, NewInternalError("failed to load user profiles", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return full, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.User().GetByIDWithProfiles(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, NewInternalError("failed to load user", err)
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, role *models.UserRole, search string, page, size int) ([]*UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	users, total, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Role:   role,
		Search: search,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, 0, NewInternalError("failed to list users", err)
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}
	return responses, total, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByIDWithProfiles(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, NewInternalError("failed to load user", err)
	}
	return user, nil
}

// UpdateUser changes display fields only. Role and email are immutable in
// this flow.
func (s *authService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*UserResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError(errs.Error())
	}

	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, NewInternalError("failed to load user", err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, NewInternalError("failed to update user", err)
	}
	return NewUserResponse(user), nil
}

func (s *authService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.User().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return NewNotFoundError("user not found")
		}
		return NewInternalError(fmt.Sprintf("failed to delete user %s", id), err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
