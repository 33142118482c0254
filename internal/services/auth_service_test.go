package services

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/models"
	"github.com/schoolsync/student-service/internal/repositories"
	"github.com/schoolsync/student-service/internal/validator"
)

// fakeUserRepo enforces email uniqueness like the real table does.
type fakeUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repositories.ErrDuplicateKey
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) GetByIDWithProfiles(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	return f.GetByID(ctx, tx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.byID {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

func newAuthFixture() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	repo := &mockRepository{user: userRepo}
	svc := NewAuthService(nil, repo, testLogger(), validator.New())
	return svc, userRepo
}

func registerReq() *models.RegisterRequest {
	return &models.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada.Lovelace@School.test",
		Password:  "correct-horse",
		Role:      models.RoleTeacher,
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Email != "ada.lovelace@school.test" {
		t.Errorf("expected lowercased email, got %s", resp.Email)
	}
	if resp.Role != models.RoleTeacher {
		t.Errorf("expected TEACHER role, got %s", resp.Role)
	}

	stored := userRepo.byEmail["ada.lovelace@school.test"]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.Password == "correct-horse" {
		t.Error("password stored in plaintext")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same address in a different case is still a duplicate.
	req := registerReq()
	req.Email = strings.ToUpper(req.Email)
	_, err := svc.Register(ctx, req)
	if !IsKind(err, KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc, _ := newAuthFixture()

	req := registerReq()
	req.Role = models.UserRole("SUPERUSER")
	_, err := svc.Register(context.Background(), req)
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("case-insensitive email", func(t *testing.T) {
		user, err := svc.Login(ctx, &models.LoginRequest{
			Email:    "ADA.LOVELACE@school.test",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if user.Email != "ada.lovelace@school.test" {
			t.Errorf("unexpected email %s", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{
			Email:    "ada.lovelace@school.test",
			Password: "wrong",
		})
		if !IsKind(err, KindUnauthenticated) {
			t.Fatalf("expected unauthenticated error, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{
			Email:    "nobody@school.test",
			Password: "correct-horse",
		})
		if !IsKind(err, KindUnauthenticated) {
			t.Fatalf("expected unauthenticated error, got %v", err)
		}
	})
}
