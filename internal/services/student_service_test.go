package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/validator"
)

func newStudentFixture() (StudentService, *fakeUserRepo, *fakeStudentRepo) {
	userRepo := newFakeUserRepo()
	studentRepo := newFakeStudentRepo()
	repo := &mockRepository{user: userRepo, student: studentRepo}
	svc := NewStudentService(nil, repo, testLogger(), validator.New())
	return svc, userRepo, studentRepo
}

func createStudentReq() *models.CreateStudentRequest {
	return &models.CreateStudentRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace.hopper@school.test",
		Password:  "correct-horse",
	}
}

func TestStudentService_Create(t *testing.T) {
	svc, userRepo, studentRepo := newStudentFixture()

	profile, err := svc.Create(context.Background(), createStudentReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(studentRepo.profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(studentRepo.profiles))
	}
	user := userRepo.byID[profile.UserID]
	if user == nil {
		t.Fatal("owning user not persisted")
	}
	if user.Role != models.RoleStudent {
		t.Errorf("expected STUDENT role, got %s", user.Role)
	}
	if user.Email != "grace.hopper@school.test" {
		t.Errorf("unexpected email %s", user.Email)
	}
}

func TestStudentService_Create_DuplicateEmailLeavesNoProfile(t *testing.T) {
	svc, userRepo, studentRepo := newStudentFixture()

	existing := &models.User{
		ID:    uuid.New().String(),
		Email: "grace.hopper@school.test",
		Role:  models.RoleTeacher,
	}
	if err := userRepo.Create(context.Background(), nil, existing); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := svc.Create(context.Background(), createStudentReq())
	if !IsKind(err, KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(studentRepo.profiles) != 0 {
		t.Errorf("expected no profile after aborted create, got %d", len(studentRepo.profiles))
	}
}

func TestStudentService_Delete_Cascade(t *testing.T) {
	svc, userRepo, studentRepo := newStudentFixture()
	ctx := context.Background()

	profile, err := svc.Create(ctx, createStudentReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	studentRepo.docs[profile.ID] = []*models.StudentDocument{
		{ID: 1, StudentID: profile.ID, Name: "birth-certificate.pdf"},
		{ID: 2, StudentID: profile.ID, Name: "transcript.pdf"},
	}

	if err := svc.Delete(ctx, profile.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, ok := studentRepo.profiles[profile.ID]; ok {
		t.Error("profile still present after delete")
	}
	if docs := studentRepo.docs[profile.ID]; len(docs) != 0 {
		t.Errorf("expected documents removed, %d left", len(docs))
	}
	if _, ok := userRepo.byID[profile.UserID]; ok {
		t.Error("owning user still present after delete")
	}
}

func TestStudentService_Delete_FreesEmail(t *testing.T) {
	svc, _, _ := newStudentFixture()
	ctx := context.Background()

	profile, err := svc.Create(ctx, createStudentReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, profile.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The address must be reusable once the account is gone.
	if _, err := svc.Create(ctx, createStudentReq()); err != nil {
		t.Fatalf("re-create with freed email failed: %v", err)
	}
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newStudentFixture()

	err := svc.Delete(context.Background(), uuid.New().String())
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
