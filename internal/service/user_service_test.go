package service

import (
	"context"
	"errors"
	"testing"

	"gymbeauty/internal/repository"
)

func TestLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserRequest{Username: "reception", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Role != "staff" {
		t.Fatalf("role = %q, want staff default", created.Role)
	}
	if created.Password == "s3cret99" {
		t.Fatal("password stored in plaintext")
	}

	resp, err := svc.Login(ctx, LoginRequest{Username: "reception", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if resp.User.LastLogin == nil {
		t.Fatal("lastLogin not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserRequest{Username: "admin2", Password: "s3cret99", Role: "admin"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := svc.Login(ctx, LoginRequest{Username: "admin2", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials for unknown user", err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserRequest{Username: "dup", Password: "s3cret99"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateUserRequest{Username: "dup", Password: "other123"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}
