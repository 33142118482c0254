package models

import (
	"time"

	"gorm.io/gorm"
)

// Exam is a named assessment event. Created once by a teacher or admin and
// referenced by grade records.
type Exam struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	Term      *string   `json:"term" gorm:"size:50"`
	ExamDate  time.Time `json:"exam_date" gorm:"not null"`
	ClassID   *uint     `json:"class_id" gorm:"index"`
	SectionID *uint     `json:"section_id" gorm:"index"`
	MaxMarks  float64   `json:"max_marks" gorm:"not null;default:100"`

	CreatedByID string `json:"created_by_id" gorm:"not null;size:36;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Class     *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Section   *Section `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	CreatedBy *User    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (Exam) TableName() string {
	return "exams"
}

// GradeRecord holds one row per (student, exam, subject). GPA is derived at
// write time and stored; it is null when total marks is zero or absent.
type GradeRecord struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"not null;size:36;uniqueIndex:idx_grade_student_exam_subject"`
	ExamID    uint   `json:"exam_id" gorm:"not null;uniqueIndex:idx_grade_student_exam_subject"`
	Subject   string `json:"subject" gorm:"not null;size:100;uniqueIndex:idx_grade_student_exam_subject"`

	ScoredMarks float64  `json:"scored_marks" gorm:"not null"`
	TotalMarks  float64  `json:"total_marks" gorm:"not null"`
	Grade       *string  `json:"grade" gorm:"size:5"`
	GPA         *float64 `json:"gpa"`
	Remarks     *string  `json:"remarks" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student *StudentProfile `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Exam    *Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
}

func (GradeRecord) TableName() string {
	return "grade_records"
}
