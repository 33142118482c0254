package models

import (
	"time"

	"gorm.io/gorm"
)

// ParentProfile links a PARENT-role user to the student they are guardian of.
type ParentProfile struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	UserID    string `json:"user_id" gorm:"uniqueIndex;not null;size:36"`
	StudentID string `json:"student_id" gorm:"not null;index;size:36"`

	Relationship *string `json:"relationship" gorm:"size:50"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User    *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Student *StudentProfile `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (ParentProfile) TableName() string {
	return "parent_profiles"
}
