package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (r *ClassPostgreSQL) CreateClass(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Create(class).Error)
}

func (r *ClassPostgreSQL) GetClassByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error) {
	db := getDB(r.db, tx)
	var class models.Class
	if err := db.WithContext(ctx).First(&class, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &class, nil
}

func (r *ClassPostgreSQL) ListClasses(ctx context.Context, tx *gorm.DB) ([]*models.Class, error) {
	db := getDB(r.db, tx)
	var classes []*models.Class
	if err := db.WithContext(ctx).
		Preload("Sections").
		Preload("Sections.Teacher").
		Preload("Sections.Teacher.User").
		Preload("Students").
		Preload("Students.User").
		Order("created_at DESC").
		Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (r *ClassPostgreSQL) CreateSection(ctx context.Context, tx *gorm.DB, section *models.Section) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Create(section).Error)
}

func (r *ClassPostgreSQL) GetSectionByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error) {
	db := getDB(r.db, tx)
	var section models.Section
	if err := db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &section, nil
}

func (r *ClassPostgreSQL) GetSectionWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error) {
	db := getDB(r.db, tx)
	var section models.Section
	if err := db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.User").
		First(&section, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &section, nil
}
