package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (r *ExamPostgreSQL) Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Create(exam).Error)
}

func (r *ExamPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	db := getDB(r.db, tx)
	var exam models.Exam
	if err := db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &exam, nil
}

type GradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{db: db}
}

// Upsert is keyed by (student_id, exam_id, subject); marks, grade label,
// stored GPA and remarks are overwritten on conflict.
func (r *GradePostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, record *models.GradeRecord) error {
	db := getDB(r.db, tx)
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "exam_id"}, {Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"scored_marks", "total_marks", "grade", "gpa", "remarks", "updated_at",
		}),
	}).Create(record).Error
	return translateError(err)
}

func (r *GradePostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.GradeRecord, error) {
	db := getDB(r.db, tx)
	var records []*models.GradeRecord
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Exam").
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get grades for student: %w", err)
	}
	return records, nil
}
