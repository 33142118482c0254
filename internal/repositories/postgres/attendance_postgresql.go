package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

// Upsert is keyed by (student_id, date). An existing row keeps its identity;
// only status, remarks and recorder are overwritten.
func (r *AttendancePostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, record *models.AttendanceRecord) error {
	db := getDB(r.db, tx)
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "remarks", "recorded_by_id", "updated_at",
		}),
	}).Create(record).Error
	return translateError(err)
}

func (r *AttendancePostgreSQL) GetByDate(ctx context.Context, tx *gorm.DB, date time.Time) ([]*models.AttendanceRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.AttendanceRecord
	if err := db.WithContext(ctx).
		Where("date = ?", date).
		Preload("Student").
		Preload("Student.User").
		Preload("Student.Class").
		Preload("Student.Section").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get attendance for date: %w", err)
	}
	return records, nil
}

func (r *AttendancePostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.AttendanceRecord

	query := db.WithContext(ctx).Where("student_id = ?", filters.StudentID)
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	if err := query.Order("date ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get attendance for student: %w", err)
	}
	return records, nil
}

func (r *AttendancePostgreSQL) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AttendanceRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.AttendanceRecord
	if err := db.WithContext(ctx).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent attendance: %w", err)
	}
	return records, nil
}
