package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadscout/api/internal/auth"
	"github.com/leadscout/api/internal/entity"
	"github.com/leadscout/api/internal/repository"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "sales@leadscout.example",
		PasswordHash: string(hash),
		Role:         "user",
	}

	repo := &mockUsersRepository{
		findByEmail: func(_ context.Context, email string) (*entity.User, error) {
			if email != user.Email {
				return nil, repository.ErrUserNotFound
			}
			return user, nil
		},
	}
	manager := auth.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(repo, manager)

	token, err := svc.Login(context.Background(), user.Email, "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token failed to parse: %v", err)
	}
	if claims.Subject != user.ID.String() || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@leadscout.example", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}
