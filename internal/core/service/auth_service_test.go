package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	u.ID = string(rune('a' + r.nextID))
	clone := *u
	r.byEmail[u.Email] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ops@Example.COM ", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ops@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}

	token, logged, err := svc.Login(ctx, "ops@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Error("login resolved a different user")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["email"] != "ops@example.com" {
		t.Errorf("unexpected email claim: %v", claims["email"])
	}
	if claims["sub"] != user.ID {
		t.Errorf("unexpected sub claim: %v", claims["sub"])
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ops@example.com", "right-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(ctx, "ops@example.com", "wrong-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ops@example.com", "pass-12345"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.Register(ctx, "ops@example.com", "pass-12345")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthEmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("register: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ops@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("login: expected ErrInvalidCredentials, got %v", err)
	}
}
