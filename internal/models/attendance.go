package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// AttendanceRecord holds one row per (student, calendar date). Recording a
// second time for the same pair overwrites status, remarks and recorder
// instead of duplicating the row.
type AttendanceRecord struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID string           `json:"student_id" gorm:"not null;size:36;uniqueIndex:idx_attendance_student_date"`
	Date      time.Time        `json:"date" gorm:"not null;type:date;uniqueIndex:idx_attendance_student_date"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10"`
	Remarks   *string          `json:"remarks" gorm:"size:500"`

	RecordedByID string `json:"recorded_by_id" gorm:"not null;size:36;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student    *StudentProfile `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	RecordedBy *User           `json:"recorded_by,omitempty" gorm:"foreignKey:RecordedByID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
