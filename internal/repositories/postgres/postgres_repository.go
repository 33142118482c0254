package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db *gorm.DB

	user       repositories.UserRepository
	student    repositories.StudentRepository
	teacher    repositories.TeacherRepository
	class      repositories.ClassRepository
	attendance repositories.AttendanceRepository
	exam       repositories.ExamRepository
	grade      repositories.GradeRepository
	dashboard  repositories.DashboardRepository
}

// NewPostgreSQLRepository creates the repository aggregate with all
// sub-repositories bound to db.
func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:         db,
		user:       NewUserPostgreSQL(db),
		student:    NewStudentPostgreSQL(db),
		teacher:    NewTeacherPostgreSQL(db),
		class:      NewClassPostgreSQL(db),
		attendance: NewAttendancePostgreSQL(db),
		exam:       NewExamPostgreSQL(db),
		grade:      NewGradePostgreSQL(db),
		dashboard:  NewDashboardPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository { return r.user }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository { return r.student }
func (r *PostgreSQLRepository) Teacher() repositories.TeacherRepository { return r.teacher }
func (r *PostgreSQLRepository) Class() repositories.ClassRepository { return r.class }
func (r *PostgreSQLRepository) Attendance() repositories.AttendanceRepository { return r.attendance }
func (r *PostgreSQLRepository) Exam() repositories.ExamRepository { return r.exam }
func (r *PostgreSQLRepository) Grade() repositories.GradeRepository { return r.grade }
func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository { return r.dashboard }

// WithTransaction runs fn inside a single database transaction. The
// Repository handed to fn is rebound to the transaction, so every call made
// through it commits or rolls back as a unit.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgreSQLRepository(tx))
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

type postgresRepositoryManager struct {
	db   *gorm.DB
	repo repositories.Repository
}

func NewRepositoryManager(db *gorm.DB) repositories.RepositoryManager {
	return &postgresRepositoryManager{db: db}
}

func (m *postgresRepositoryManager) Initialize() error {
	if m.db == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.db)
	return nil
}

func (m *postgresRepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *postgresRepositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *postgresRepositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
