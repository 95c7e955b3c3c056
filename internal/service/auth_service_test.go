package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	env := newTestEnv(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Login.MaxFailures = 5
	cfg.Login.WindowMinutes = 15
	return NewAuthService(repository.NewUserRepository(env.db), nil, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register("alice", "correct-horse-battery")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "correct-horse-battery" {
		t.Fatal("password stored in plaintext")
	}

	token, loggedIn, err := auth.Login(ctx, "alice", "correct-horse-battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || loggedIn.ID != user.ID {
		t.Fatalf("unexpected login result %q / %d", token, loggedIn.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth := newAuthService(t)

	if _, err := auth.Register("alice", "correct-horse-battery"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := auth.Register("alice", "other-password")
	if !errors.Is(err, util.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register("alice", "correct-horse-battery"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := auth.Login(ctx, "alice", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
