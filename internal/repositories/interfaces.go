package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole `json:"role"`
	Search    string           `json:"search"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "created_at", "email", "last_name"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type StudentFilters struct {
	Search    string `json:"search"` // matches name, email or phone
	ClassID   *uint  `json:"class_id"`
	SectionID *uint  `json:"section_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type AttendanceFilters struct {
	StudentID string     `json:"student_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
}

// ===== REPOSITORY INTERFACES =====

// All methods accept an optional tx; a nil tx means the pooled connection.

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByIDWithProfiles(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error)
	GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error)
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.StudentProfile, int64, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteDocuments(ctx context.Context, tx *gorm.DB, studentID string) error
}

type TeacherRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.TeacherProfile) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.TeacherProfile, error)
}

type ClassRepository interface {
	CreateClass(ctx context.Context, tx *gorm.DB, class *models.Class) error
	GetClassByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error)
	ListClasses(ctx context.Context, tx *gorm.DB) ([]*models.Class, error)
	CreateSection(ctx context.Context, tx *gorm.DB, section *models.Section) error
	GetSectionByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error)
	GetSectionWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error)
}

type AttendanceRepository interface {
	// Upsert inserts or, when a row for (student_id, date) exists, overwrites
	// status, remarks and recorder.
	Upsert(ctx context.Context, tx *gorm.DB, record *models.AttendanceRecord) error
	GetByDate(ctx context.Context, tx *gorm.DB, date time.Time) ([]*models.AttendanceRecord, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, filters AttendanceFilters) ([]*models.AttendanceRecord, error)
	GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AttendanceRecord, error)
}

type ExamRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error)
}

type GradeRepository interface {
	// Upsert inserts or, when a row for (student_id, exam_id, subject)
	// exists, overwrites marks, grade, gpa and remarks.
	Upsert(ctx context.Context, tx *gorm.DB, record *models.GradeRecord) error
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.GradeRecord, error)
}

type DashboardRepository interface {
	CountStudents(ctx context.Context, tx *gorm.DB) (int64, error)
	CountTeachers(ctx context.Context, tx *gorm.DB) (int64, error)
	RecentAdmissions(ctx context.Context, tx *gorm.DB, limit int) ([]*models.StudentProfile, error)
}
