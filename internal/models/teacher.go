package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TeacherProfile is the one-to-one extension of a TEACHER-role user.
// Sections reference it as the assigned teacher but do not own it.
type TeacherProfile struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:36"`

	Bio      *string        `json:"bio" gorm:"type:text"`
	Subjects datatypes.JSON `json:"subjects" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}
