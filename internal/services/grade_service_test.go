package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/events"
	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

func newGradeFixture() (GradeService, *fakeExamRepo, *fakeGradeRepo, *events.MockEventPublisher) {
	examRepo := newFakeExamRepo()
	gradeRepo := newFakeGradeRepo()
	repo := &mockRepository{exam: examRepo, grade: gradeRepo}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewGradeService(nil, repo, testLogger(), validator.New(), publisher)
	return svc, examRepo, gradeRepo, publisher
}

func TestNewGradeService(t *testing.T) {
	type args struct {
		db        *gorm.DB
		repo      repositories.Repository
		logger    *slog.Logger
		validator *validator.Validator
		publisher events.EventPublisher
	}
	tests := []struct {
		name string
		args args
	}{
		{name: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewGradeService(tt.args.db, tt.args.repo, tt.args.logger, tt.args.validator, tt.args.publisher)
		})
	}
}

func TestDeriveGPA(t *testing.T) {
	tests := []struct {
		name   string
		scored float64
		total  float64
		want   *float64
	}{
		{name: "eighty percent", scored: 80, total: 100, want: ptrFloat(3.2)},
		{name: "full marks", scored: 100, total: 100, want: ptrFloat(4)},
		{name: "rounds to 2 decimals", scored: 33, total: 90, want: ptrFloat(1.47)},
		{name: "zero total is null", scored: 50, total: 0, want: nil},
		{name: "zero scored", scored: 0, total: 100, want: ptrFloat(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveGPA(tt.scored, tt.total)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestAverageGPA(t *testing.T) {
	tests := []struct {
		name   string
		grades []*models.GradeRecord
		want   float64
	}{
		{name: "no rows", grades: nil, want: 0},
		{
			name: "simple mean",
			grades: []*models.GradeRecord{
				{GPA: ptrFloat(4)},
				{GPA: ptrFloat(2)},
			},
			want: 3,
		},
		{
			// A null GPA contributes 0 to the sum but still counts in the
			// divisor.
			name: "null folds as zero",
			grades: []*models.GradeRecord{
				{GPA: ptrFloat(3.5)},
				{GPA: nil},
				{GPA: ptrFloat(2.5)},
			},
			want: 2,
		},
		{
			name: "rounds to 2 decimals",
			grades: []*models.GradeRecord{
				{GPA: ptrFloat(3)},
				{GPA: ptrFloat(3)},
				{GPA: ptrFloat(4)},
			},
			want: 3.33,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageGPA(tt.grades); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeService_RecordGrades_EmptyBatch(t *testing.T) {
	svc, _, gradeRepo, publisher := newGradeFixture()

	tests := []struct {
		name string
		req  *models.RecordGradesRequest
	}{
		{name: "nil request", req: nil},
		{name: "missing exam", req: &models.RecordGradesRequest{
			Grades: []models.GradeItem{{StudentID: testStudentID, Subject: "Math"}},
		}},
		{name: "empty grades", req: &models.RecordGradesRequest{ExamID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordGrades(context.Background(), testActorID, tt.req)
			if !IsKind(err, KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if len(gradeRepo.rows) != 0 {
		t.Errorf("expected no rows persisted, got %d", len(gradeRepo.rows))
	}
	if got := publisher.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}

func TestGradeService_RecordGrades_MissingExam(t *testing.T) {
	svc, _, _, _ := newGradeFixture()

	err := svc.RecordGrades(context.Background(), testActorID, &models.RecordGradesRequest{
		ExamID: 42,
		Grades: []models.GradeItem{
			{StudentID: testStudentID, Subject: "Math", ScoredMarks: 80, TotalMarks: 100},
		},
	})
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGradeService_RecordGrades_UpsertBySubject(t *testing.T) {
	svc, examRepo, gradeRepo, publisher := newGradeFixture()
	ctx := context.Background()

	exam, err := svc.CreateExam(ctx, testActorID, &models.CreateExamRequest{
		Name:     "Midterm",
		ExamDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create exam failed: %v", err)
	}
	if exam.MaxMarks != 100 {
		t.Errorf("expected default max marks 100, got %v", exam.MaxMarks)
	}
	if _, ok := examRepo.exams[exam.ID]; !ok {
		t.Fatal("exam not persisted")
	}

	first := &models.RecordGradesRequest{
		ExamID: exam.ID,
		Grades: []models.GradeItem{
			{StudentID: testStudentID, Subject: "Math", ScoredMarks: 60, TotalMarks: 100},
		},
	}
	if err := svc.RecordGrades(ctx, testActorID, first); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}

	// Same (student, exam, subject) overwrites the row.
	second := &models.RecordGradesRequest{
		ExamID: exam.ID,
		Grades: []models.GradeItem{
			{StudentID: testStudentID, Subject: "Math", ScoredMarks: 80, TotalMarks: 100},
		},
	}
	if err := svc.RecordGrades(ctx, testActorID, second); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}

	if len(gradeRepo.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(gradeRepo.rows))
	}
	row := gradeRepo.rows[gradeKey(testStudentID, exam.ID, "Math")]
	if row == nil {
		t.Fatal("expected row for (student, exam, Math)")
	}
	if row.ScoredMarks != 80 {
		t.Errorf("expected overwritten scored marks 80, got %v", row.ScoredMarks)
	}
	if row.GPA == nil || *row.GPA != 3.2 {
		t.Errorf("expected stored GPA 3.2, got %v", row.GPA)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("expected one event per batch, got %d", len(published))
	}
	if published[0].Type != EventGradesRecorded {
		t.Errorf("unexpected event type %s", published[0].Type)
	}
}

func TestGradeService_RecordGrades_ZeroTotalStoresNullGPA(t *testing.T) {
	svc, _, gradeRepo, _ := newGradeFixture()
	ctx := context.Background()

	exam, err := svc.CreateExam(ctx, testActorID, &models.CreateExamRequest{
		Name:     "Quiz",
		ExamDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create exam failed: %v", err)
	}

	req := &models.RecordGradesRequest{
		ExamID: exam.ID,
		Grades: []models.GradeItem{
			{StudentID: testStudentID, Subject: "Art", ScoredMarks: 10, TotalMarks: 0},
		},
	}
	if err := svc.RecordGrades(ctx, testActorID, req); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	row := gradeRepo.rows[gradeKey(testStudentID, exam.ID, "Art")]
	if row == nil {
		t.Fatal("expected persisted row")
	}
	if row.GPA != nil {
		t.Errorf("expected null GPA for zero total, got %v", *row.GPA)
	}
}

func TestGradeService_ReportCard(t *testing.T) {
	svc, _, gradeRepo, _ := newGradeFixture()
	ctx := context.Background()

	t.Run("no rows is not found", func(t *testing.T) {
		_, err := svc.ReportCard(ctx, testStudentID)
		if !IsKind(err, KindNotFound) {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})

	t.Run("average folds null as zero", func(t *testing.T) {
		gradeRepo.rows[gradeKey(testStudentID, 1, "Math")] = &models.GradeRecord{
			StudentID: testStudentID, ExamID: 1, Subject: "Math", GPA: ptrFloat(3.5),
		}
		gradeRepo.rows[gradeKey(testStudentID, 1, "Art")] = &models.GradeRecord{
			StudentID: testStudentID, ExamID: 1, Subject: "Art", GPA: nil,
		}
		gradeRepo.rows[gradeKey(testStudentID, 1, "Science")] = &models.GradeRecord{
			StudentID: testStudentID, ExamID: 1, Subject: "Science", GPA: ptrFloat(2.5),
		}

		report, err := svc.ReportCard(ctx, testStudentID)
		if err != nil {
			t.Fatalf("report card failed: %v", err)
		}
		if len(report.Grades) != 3 {
			t.Fatalf("expected 3 grades, got %d", len(report.Grades))
		}
		if report.AverageGPA != 2 {
			t.Errorf("expected average 2.00, got %v", report.AverageGPA)
		}
	})
}

func ptrFloat(v float64) *float64 { return &v }
