package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db}
}

func (r *DashboardPostgreSQL) CountStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.StudentProfile{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (r *DashboardPostgreSQL) CountTeachers(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := getDB(r.db, tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.TeacherProfile{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return count, nil
}

func (r *DashboardPostgreSQL) RecentAdmissions(ctx context.Context, tx *gorm.DB, limit int) ([]*models.StudentProfile, error) {
	db := getDB(r.db, tx)
	var profiles []*models.StudentProfile
	if err := db.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Order("created_at DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent admissions: %w", err)
	}
	return profiles, nil
}
