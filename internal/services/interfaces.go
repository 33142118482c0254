package services

import (
	"context"
	"time"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

// ===== RESPONSE DTOs =====

type UserResponse struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Phone     *string         `json:"phone"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewUserResponse strips credentials from a user record.
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

type StudentListResponse struct {
	Students []*models.StudentProfile `json:"students"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	Size     int                      `json:"size"`
}

type AttendanceReportResponse struct {
	Records []*models.AttendanceRecord      `json:"records"`
	Summary map[models.AttendanceStatus]int `json:"summary"`
}

type ReportCardResponse struct {
	Grades     []*models.GradeRecord `json:"grades"`
	AverageGPA float64               `json:"average_gpa"`
}

// ===== LIST PARAMS =====

type ListStudentsParams struct {
	Search    string `json:"search"`
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (p ListStudentsParams) toFilters() repositories.StudentFilters {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.Size
	if size < 1 {
		size = 10
	}
	return repositories.StudentFilters{
		Search:    p.Search,
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, role *models.UserRole, search string, page, size int) ([]*UserResponse, int64, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type StudentService interface {
	Create(ctx context.Context, req *models.CreateStudentRequest) (*models.StudentProfile, error)
	Get(ctx context.Context, id string) (*models.StudentProfile, error)
	List(ctx context.Context, params ListStudentsParams) (*StudentListResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateStudentRequest) (*models.StudentProfile, error)
	Delete(ctx context.Context, id string) error
}

type ClassService interface {
	CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.Section, error)
	AssignStudent(ctx context.Context, studentID string, req *models.AssignSectionRequest) (*models.StudentProfile, error)
}

type AttendanceService interface {
	Record(ctx context.Context, actorID string, req *models.RecordAttendanceRequest) error
	GetForDate(ctx context.Context, date time.Time) ([]*models.AttendanceRecord, error)
	Report(ctx context.Context, studentID string, startDate, endDate *time.Time) (*AttendanceReportResponse, error)
	ExportReport(ctx context.Context, studentID string, startDate, endDate *time.Time) ([]byte, error)
}

type GradeService interface {
	CreateExam(ctx context.Context, actorID string, req *models.CreateExamRequest) (*models.Exam, error)
	RecordGrades(ctx context.Context, actorID string, req *models.RecordGradesRequest) error
	ReportCard(ctx context.Context, studentID string) (*ReportCardResponse, error)
}
