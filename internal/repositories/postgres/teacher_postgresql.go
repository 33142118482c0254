package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

type TeacherPostgreSQL struct {
	db *gorm.DB
}

func NewTeacherPostgreSQL(db *gorm.DB) repositories.TeacherRepository {
	return &TeacherPostgreSQL{db: db}
}

func (r *TeacherPostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.TeacherProfile) error {
	db := getDB(r.db, tx)
	return translateError(db.WithContext(ctx).Create(profile).Error)
}

func (r *TeacherPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.TeacherProfile, error) {
	db := getDB(r.db, tx)
	var profile models.TeacherProfile
	if err := db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}
