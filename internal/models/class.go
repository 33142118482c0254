package models

import (
	"time"

	"gorm.io/gorm"
)

// Class is a named grade-level grouping shared by student placements,
// sections and exams.
type Class struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Grade       string  `json:"grade" gorm:"not null;size:20"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Sections []Section        `json:"sections,omitempty" gorm:"foreignKey:ClassID"`
	Students []StudentProfile `json:"students,omitempty" gorm:"foreignKey:ClassID"`
}

func (Class) TableName() string {
	return "classes"
}

// Section is a named subdivision of exactly one class with an optional
// assigned teacher.
type Section struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null;size:50"`
	ClassID   uint    `json:"class_id" gorm:"not null;index"`
	TeacherID *string `json:"teacher_id" gorm:"index;size:36"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Class   *Class          `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Teacher *TeacherProfile `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

func (Section) TableName() string {
	return "sections"
}
