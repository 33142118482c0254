package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Create(profile).Error)
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error) {
	db := getDB(r.db, tx)
	var profile models.StudentProfile
	if err := db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *StudentPostgreSQL) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error) {
	db := getDB(r.db, tx)
	var profile models.StudentProfile
	if err := db.WithContext(ctx).
		Preload("User").
		Preload("Class").
		Preload("Section").
		Preload("Documents").
		First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *StudentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.StudentProfile, int64, error) {
	db := getDB(r.db, tx)
	var profiles []*models.StudentProfile
	var total int64

	query := db.WithContext(ctx).Model(&models.StudentProfile{}).
		Joins("JOIN users ON users.id = student_profiles.user_id")

	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR users.phone LIKE ?",
			like, like, like, like,
		)
	}
	if filters.ClassID != nil {
		query = query.Where("student_profiles.class_id = ?", *filters.ClassID)
	}
	if filters.SectionID != nil {
		query = query.Where("student_profiles.section_id = ?", *filters.SectionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]string{
		"created_at": "student_profiles.created_at",
		"last_name":  "users.last_name",
		"email":      "users.email",
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.
		Preload("User").
		Preload("Class").
		Preload("Section").
		Find(&profiles).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return profiles, total, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Save(profile).Error)
}

// Delete removes the row for good. A soft delete would keep user_id in the
// unique index and block the user from ever owning a new profile.
func (r *StudentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := getDB(r.db, tx)
	result := db.WithContext(ctx).Unscoped().Delete(&models.StudentProfile{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *StudentPostgreSQL) DeleteDocuments(ctx context.Context, tx *gorm.DB, studentID string) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.StudentDocument{}).Error)
}
