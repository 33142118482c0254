package models

import (
	"time"
)

// ===== AUTH =====

type RegisterRequest struct {
	FirstName string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=1,max=100"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	Role      UserRole `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT PARENT"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

// ===== STUDENTS =====

type CreateStudentRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string  `json:"last_name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`

	Age            *int       `json:"age" validate:"omitempty,min=3,max=120"`
	Gender         *Gender    `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ContactAddress *string    `json:"contact_address" validate:"omitempty,max=500"`
	GuardianName   *string    `json:"guardian_name" validate:"omitempty,max=200"`
	GuardianPhone  *string    `json:"guardian_phone" validate:"omitempty,max=30"`
	GuardianEmail  *string    `json:"guardian_email" validate:"omitempty,email"`
	Photo          *string    `json:"photo" validate:"omitempty,max=500"`
	ClassID        *uint      `json:"class_id"`
	SectionID      *uint      `json:"section_id"`
}

type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`

	Age            *int       `json:"age" validate:"omitempty,min=3,max=120"`
	Gender         *Gender    `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ContactAddress *string    `json:"contact_address" validate:"omitempty,max=500"`
	GuardianName   *string    `json:"guardian_name" validate:"omitempty,max=200"`
	GuardianPhone  *string    `json:"guardian_phone" validate:"omitempty,max=30"`
	GuardianEmail  *string    `json:"guardian_email" validate:"omitempty,email"`
	Photo          *string    `json:"photo" validate:"omitempty,max=500"`
}

// ===== CLASSES =====

type CreateClassRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Grade       string  `json:"grade" validate:"required,min=1,max=20"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type CreateSectionRequest struct {
	ClassID   uint    `json:"class_id" validate:"required"`
	Name      string  `json:"name" validate:"required,min=1,max=50"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
}

type AssignSectionRequest struct {
	ClassID   *uint `json:"class_id"`
	SectionID *uint `json:"section_id"`
}

// ===== ATTENDANCE =====

type AttendanceItem struct {
	StudentID string           `json:"student_id" validate:"required,uuid"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
	Remarks   *string          `json:"remarks" validate:"omitempty,max=500"`
}

type RecordAttendanceRequest struct {
	Date    string           `json:"date" validate:"required,datetime=2006-01-02"`
	Records []AttendanceItem `json:"records" validate:"required,min=1,dive"`
}

// ===== EXAMS & GRADES =====

type CreateExamRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=200"`
	Term      *string   `json:"term" validate:"omitempty,max=50"`
	ExamDate  time.Time `json:"exam_date" validate:"required"`
	ClassID   *uint     `json:"class_id"`
	SectionID *uint     `json:"section_id"`
	MaxMarks  *float64  `json:"max_marks" validate:"omitempty,gt=0"`
}

type GradeItem struct {
	StudentID   string  `json:"student_id" validate:"required,uuid"`
	Subject     string  `json:"subject" validate:"required,min=1,max=100"`
	ScoredMarks float64 `json:"scored_marks" validate:"min=0"`
	TotalMarks  float64 `json:"total_marks" validate:"min=0"`
	Grade       *string `json:"grade" validate:"omitempty,max=5"`
	Remarks     *string `json:"remarks" validate:"omitempty,max=500"`
}

type RecordGradesRequest struct {
	ExamID uint        `json:"exam_id" validate:"required"`
	Grades []GradeItem `json:"grades" validate:"required,min=1,dive"`
}
