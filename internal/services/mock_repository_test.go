package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
)

// mockRepository is a minimal in-memory Repository for service tests.
// Sub-repositories default to nil; tests set the ones they exercise.
type mockRepository struct {
	user       repositories.UserRepository
	student    repositories.StudentRepository
	teacher    repositories.TeacherRepository
	class      repositories.ClassRepository
	attendance repositories.AttendanceRepository
	exam       repositories.ExamRepository
	grade      repositories.GradeRepository
	dashboard  repositories.DashboardRepository
}

func (m *mockRepository) User() repositories.UserRepository { return m.user }
func (m *mockRepository) Student() repositories.StudentRepository { return m.student }
func (m *mockRepository) Teacher() repositories.TeacherRepository { return m.teacher }
func (m *mockRepository) Class() repositories.ClassRepository { return m.class }
func (m *mockRepository) Attendance() repositories.AttendanceRepository { return m.attendance }
func (m *mockRepository) Exam() repositories.ExamRepository { return m.exam }
func (m *mockRepository) Grade() repositories.GradeRepository { return m.grade }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return m.dashboard }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== ATTENDANCE FAKE =====

// fakeAttendanceRepo stores rows keyed by (student_id, date), mirroring the
// unique index.
type fakeAttendanceRepo struct {
	rows      map[string]*models.AttendanceRecord
	upsertErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*models.AttendanceRecord)}
}

func attendanceKey(studentID string, date time.Time) string {
	return studentID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, tx *gorm.DB, record *models.AttendanceRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[attendanceKey(record.StudentID, record.Date)] = record
	return nil
}

func (f *fakeAttendanceRepo) GetByDate(ctx context.Context, tx *gorm.DB, date time.Time) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.rows {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByStudent(ctx context.Context, tx *gorm.DB, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.rows {
		if r.StudentID == filters.StudentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeAttendanceRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, r := range f.rows {
		if len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

// ===== STUDENT FAKE =====

// fakeStudentRepo keeps profiles and their documents in memory.
type fakeStudentRepo struct {
	profiles map[string]*models.StudentProfile
	docs     map[string][]*models.StudentDocument
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		profiles: make(map[string]*models.StudentProfile),
		docs:     make(map[string][]*models.StudentDocument),
	}
}

func (f *fakeStudentRepo) Create(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStudentRepo) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id string) (*models.StudentProfile, error) {
	return f.GetByID(ctx, tx, id)
}

func (f *fakeStudentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.StudentProfile, int64, error) {
	var out []*models.StudentProfile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if _, ok := f.profiles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeStudentRepo) DeleteDocuments(ctx context.Context, tx *gorm.DB, studentID string) error {
	delete(f.docs, studentID)
	return nil
}

// ===== CLASS FAKE =====

type fakeClassRepo struct {
	classes  map[uint]*models.Class
	sections map[uint]*models.Section
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{
		classes:  make(map[uint]*models.Class),
		sections: make(map[uint]*models.Section),
	}
}

func (f *fakeClassRepo) CreateClass(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	class.ID = uint(len(f.classes) + 1)
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassRepo) GetClassByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error) {
	if c, ok := f.classes[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClassRepo) ListClasses(ctx context.Context, tx *gorm.DB) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.classes {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClassRepo) CreateSection(ctx context.Context, tx *gorm.DB, section *models.Section) error {
	section.ID = uint(len(f.sections) + 1)
	f.sections[section.ID] = section
	return nil
}

func (f *fakeClassRepo) GetSectionByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error) {
	if s, ok := f.sections[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClassRepo) GetSectionWithTeacher(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error) {
	return f.GetSectionByID(ctx, tx, id)
}

// ===== EXAM / GRADE FAKES =====

type fakeExamRepo struct {
	exams map[uint]*models.Exam
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: make(map[uint]*models.Exam)}
}

func (f *fakeExamRepo) Create(ctx context.Context, tx *gorm.DB, exam *models.Exam) error {
	exam.ID = uint(len(f.exams) + 1)
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return exam, nil
}

// fakeGradeRepo stores rows keyed by (student_id, exam_id, subject).
type fakeGradeRepo struct {
	rows map[string]*models.GradeRecord
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{rows: make(map[string]*models.GradeRecord)}
}

func gradeKey(studentID string, examID uint, subject string) string {
	return fmt.Sprintf("%s|%d|%s", studentID, examID, subject)
}

func (f *fakeGradeRepo) Upsert(ctx context.Context, tx *gorm.DB, record *models.GradeRecord) error {
	f.rows[gradeKey(record.StudentID, record.ExamID, record.Subject)] = record
	return nil
}

func (f *fakeGradeRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID string) ([]*models.GradeRecord, error) {
	var out []*models.GradeRecord
	for _, r := range f.rows {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}
