package repositories

import "context"

// Repository aggregates all entity repositories behind one injection point.
type Repository interface {
	User() UserRepository
	Student() StudentRepository
	Teacher() TeacherRepository
	Class() ClassRepository
	Attendance() AttendanceRepository
	Exam() ExamRepository
	Grade() GradeRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn inside a single all-or-nothing transaction;
	// the Repository passed to fn is bound to that transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
