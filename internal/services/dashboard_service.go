package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

// ===== RESPONSE DTOs =====

type DashboardStatsResponse struct {
	TotalStudents     int64                           `json:"total_students"`
	TotalTeachers     int64                           `json:"total_teachers"`
	RecentAdmissions  []*models.StudentProfile        `json:"recent_admissions"`
	AttendanceSummary map[models.AttendanceStatus]int `json:"attendance_summary"`
}

// ===== SERVICE INTERFACE =====

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStatsResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

const (
	recentAdmissionsLimit = 5
	// The attendance summary folds over a fixed global window of the most
	// recent rows, not a per-day aggregate.
	attendanceWindowSize = 30
)

type dashboardService struct {
	db     *gorm.DB
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		db:     db,
		repo:   repo,
		logger: logger,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStatsResponse, error) {
	totalStudents, err := s.repo.Dashboard().CountStudents(ctx, nil)
	if err != nil {
		return nil, NewInternalError("failed to count students", err)
	}

	totalTeachers, err := s.repo.Dashboard().CountTeachers(ctx, nil)
	if err != nil {
		return nil, NewInternalError("failed to count teachers", err)
	}

	recent, err := s.repo.Dashboard().RecentAdmissions(ctx, nil, recentAdmissionsLimit)
	if err != nil {
		return nil, NewInternalError("failed to load recent admissions", err)
	}

	window, err := s.repo.Attendance().GetRecent(ctx, nil, attendanceWindowSize)
	if err != nil {
		return nil, NewInternalError("failed to load recent attendance", err)
	}

	return &DashboardStatsResponse{
		TotalStudents:     totalStudents,
		TotalTeachers:     totalTeachers,
		RecentAdmissions:  recent,
		AttendanceSummary: SummarizeAttendance(window),
	}, nil
}
