package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore keeps users in memory, unique per (email, role).
type fakeUserStore struct {
	users  []*model.User
	nextID int
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email && existing.Role == u.Role {
			return repository.ErrDuplicateUser
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserStore) GetByEmailAndRole(_ context.Context, email string, role model.Role) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, &fakeUserStore{})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testAuthService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "Ravi@Example.com",
		Password: "secret123",
		Role:     model.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("register returned empty token")
	}
	if user.Email != "ravi@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}

	// Login with the original casing must still work.
	_, loginToken, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "RAVI@example.com",
		Password: "secret123",
		Role:     model.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken == "" {
		t.Fatal("login returned empty token")
	}
}

func TestRegisterDuplicateEmailRolePair(t *testing.T) {
	svc := testAuthService()
	ctx := context.Background()

	req := &model.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     model.RoleStudent,
	}
	if _, _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	if _, _, err := svc.Register(ctx, req); !errors.Is(err, ErrDuplicateAccount) {
		t.Errorf("second register = %v, want ErrDuplicateAccount", err)
	}

	// Same email under the other role is a distinct identity.
	req.Role = model.RoleTeacher
	if _, _, err := svc.Register(ctx, req); err != nil {
		t.Errorf("register same email as teacher: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := testAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     model.RoleStudent,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown account.
	_, _, errUnknown := svc.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
		Role:     model.RoleStudent,
	})
	// Wrong password.
	_, _, errWrongPass := svc.Login(ctx, &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
		Role:     model.RoleStudent,
	})
	// Right credentials, wrong role.
	_, _, errWrongRole := svc.Login(ctx, &model.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     model.RoleTeacher,
	})

	for name, err := range map[string]error{
		"unknown account": errUnknown,
		"wrong password":  errWrongPass,
		"wrong role":      errWrongRole,
	} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: got %v, want ErrInvalidCredentials", name, err)
		}
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc := testAuthService()

	user := &model.User{ID: 7, Email: "t@example.com", Role: model.RoleTeacher}
	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "t@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != model.RoleTeacher {
		t.Errorf("Role = %q, want teacher", claims.Role)
	}
	if claims.ID == "" {
		t.Error("JTI missing")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testAuthService()

	token, err := svc.GenerateToken(&model.User{ID: 1, Email: "x@example.com", Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewAuthService(&config.Config{
		JWTSecret:  "different-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, &fakeUserStore{})

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  -time.Minute, // Already expired at issue time.
		BcryptCost: bcrypt.MinCost,
	}
	svc := NewAuthService(cfg, &fakeUserStore{})

	token, err := svc.GenerateToken(&model.User{ID: 1, Email: "x@example.com", Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := testAuthService()

	hash, err := svc.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	if err := svc.CheckPassword(hash, "secret123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}
