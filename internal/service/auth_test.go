package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
	"github.com/PhantomXD-nepal/np-wallet/internal/repository"
	"github.com/PhantomXD-nepal/np-wallet/internal/service"
)

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, rec repository.UserRecord) error
	ByEmailFunc     func(ctx context.Context, email string) (repository.UserRecord, error)
	EmailExistsFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, rec repository.UserRecord) error {
	return m.CreateFunc(ctx, rec)
}
func (m *mockUserRepo) ByEmail(ctx context.Context, email string) (repository.UserRecord, error) {
	return m.ByEmailFunc(ctx, email)
}
func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.EmailExistsFunc(ctx, email)
}

var testSecret = []byte("test-secret")

func TestRegister_NewUser(t *testing.T) {
	var created repository.UserRecord
	repo := &mockUserRepo{
		EmailExistsFunc: func(context.Context, string) (bool, error) { return false, nil },
		CreateFunc: func(_ context.Context, rec repository.UserRecord) error {
			created = rec
			return nil
		},
	}
	svc := service.NewAuthService(repo, testSecret, time.Hour)

	profile, err := svc.Register(context.Background(), "a@b.test", "hunter2", "Asha", "Rai")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if profile.ID == "" || profile.Email != "a@b.test" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if bcrypt.CompareHashAndPassword(created.PasswordHash, []byte("hunter2")) != nil {
		t.Error("stored hash does not match password")
	}
}

func TestRegister_Existing(t *testing.T) {
	repo := &mockUserRepo{
		EmailExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := service.NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "a@b.test", "x", "", "")
	if !errors.Is(err, service.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func storedUser(t *testing.T, password string) repository.UserRecord {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return repository.UserRecord{
		Profile:      models.UserProfile{ID: "u1", Email: "a@b.test"},
		PasswordHash: hash,
	}
}

func TestSignIn_Success(t *testing.T) {
	rec := storedUser(t, "hunter2")
	repo := &mockUserRepo{
		ByEmailFunc: func(context.Context, string) (repository.UserRecord, error) { return rec, nil },
	}
	svc := service.NewAuthService(repo, testSecret, time.Hour)

	profile, session, err := svc.SignIn(context.Background(), "a@b.test", "hunter2")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if profile.ID != "u1" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if session.Token == "" {
		t.Fatal("no token issued")
	}
	until := time.Until(session.ExpiresAt)
	if until <= 0 || until > time.Hour {
		t.Errorf("unexpected expiry: %v", session.ExpiresAt)
	}

	// The issued token round-trips through verification.
	userID, err := svc.VerifyToken(session.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if userID != "u1" {
		t.Errorf("expected subject u1, got %s", userID)
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	rec := storedUser(t, "hunter2")
	repo := &mockUserRepo{
		ByEmailFunc: func(context.Context, string) (repository.UserRecord, error) { return rec, nil },
	}
	svc := service.NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.SignIn(context.Background(), "a@b.test", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignIn_UnknownEmail(t *testing.T) {
	repo := &mockUserRepo{
		ByEmailFunc: func(context.Context, string) (repository.UserRecord, error) {
			return repository.UserRecord{}, sql.ErrNoRows
		},
	}
	svc := service.NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.SignIn(context.Background(), "nobody@b.test", "x")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(&mockUserRepo{}, testSecret, time.Hour)
	if _, err := svc.VerifyToken("not-a-token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	rec := storedUser(t, "hunter2")
	repo := &mockUserRepo{
		ByEmailFunc: func(context.Context, string) (repository.UserRecord, error) { return rec, nil },
	}
	issuer := service.NewAuthService(repo, testSecret, time.Hour)
	_, session, err := issuer.SignIn(context.Background(), "a@b.test", "hunter2")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	verifier := service.NewAuthService(repo, []byte("other-secret"), time.Hour)
	if _, err := verifier.VerifyToken(session.Token); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}
