package models

import (
	"time"

	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// StudentProfile is the one-to-one extension of a STUDENT-role user.
// It is always created in the same transaction as its owning User.
type StudentProfile struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:36"`

	Age         *int       `json:"age"`
	Gender      *Gender    `json:"gender" gorm:"size:10"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	ContactAddress *string `json:"contact_address" gorm:"size:500"`
	GuardianName   *string `json:"guardian_name" gorm:"size:200"`
	GuardianPhone  *string `json:"guardian_phone" gorm:"size:30"`
	GuardianEmail  *string `json:"guardian_email" gorm:"size:255"`
	Photo          *string `json:"photo" gorm:"size:500"`

	// Optional placement. A section is expected to belong to the student's
	// class; this is not enforced at the store level.
	ClassID   *uint `json:"class_id" gorm:"index"`
	SectionID *uint `json:"section_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User      *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Class     *Class            `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Section   *Section          `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Documents []StudentDocument `json:"documents,omitempty" gorm:"foreignKey:StudentID"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// StudentDocument is a file attachment owned by a student profile.
type StudentDocument struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"not null;index;size:36"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Path      string    `json:"path" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
}

func (StudentDocument) TableName() string {
	return "student_documents"
}
