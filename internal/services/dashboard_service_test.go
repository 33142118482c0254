package services

import (
	"context"
	"log/slog"
	"testing"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type fakeDashboardRepo struct {
	students int64
	teachers int64
	recent   []*models.StudentProfile
}

func (f *fakeDashboardRepo) CountStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	return f.students, nil
}

func (f *fakeDashboardRepo) CountTeachers(ctx context.Context, tx *gorm.DB) (int64, error) {
	return f.teachers, nil
}

func (f *fakeDashboardRepo) RecentAdmissions(ctx context.Context, tx *gorm.DB, limit int) ([]*models.StudentProfile, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func TestNewDashboardService(t *testing.T) {
	type args struct {
		db     *gorm.DB
		repo   repositories.Repository
		logger *slog.Logger
	}
	tests := []struct {
		name string
		args args
	}{
		{name: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewDashboardService(tt.args.db, tt.args.repo, tt.args.logger)
		})
	}
}

func TestDashboardService_Stats(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	for i, status := range []models.AttendanceStatus{
		models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent,
	} {
		record := &models.AttendanceRecord{ID: uint(i + 1), StudentID: testStudentID, Status: status}
		attRepo.rows[string(rune('a'+i))] = record
	}

	repo := &mockRepository{
		attendance: attRepo,
		dashboard: &fakeDashboardRepo{
			students: 42,
			teachers: 7,
			recent:   []*models.StudentProfile{{ID: testStudentID}},
		},
	}
	svc := NewDashboardService(nil, repo, testLogger())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalStudents != 42 {
		t.Errorf("expected 42 students, got %d", stats.TotalStudents)
	}
	if stats.TotalTeachers != 7 {
		t.Errorf("expected 7 teachers, got %d", stats.TotalTeachers)
	}
	if len(stats.RecentAdmissions) != 1 {
		t.Errorf("expected 1 recent admission, got %d", len(stats.RecentAdmissions))
	}
	if stats.AttendanceSummary[models.AttendancePresent] != 2 {
		t.Errorf("expected 2 PRESENT in summary, got %d", stats.AttendanceSummary[models.AttendancePresent])
	}
	if stats.AttendanceSummary[models.AttendanceAbsent] != 1 {
		t.Errorf("expected 1 ABSENT in summary, got %d", stats.AttendanceSummary[models.AttendanceAbsent])
	}
}
