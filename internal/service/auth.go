// Package service provides authentication business logic: account
// registration, credential verification, and session token issuing.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
	"github.com/PhantomXD-nepal/np-wallet/internal/repository"
)

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when registering an already-taken email.
var ErrUserExists = errors.New("user already exists")

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// Create inserts a new account row.
	Create(ctx context.Context, rec repository.UserRecord) error
	// ByEmail fetches an account by email; sql.ErrNoRows when absent.
	ByEmail(ctx context.Context, email string) (repository.UserRecord, error)
	// EmailExists checks whether an account with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AuthService implements registration and sign-in, issuing bearer session
// tokens the client caches for offline use.
type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService constructs an AuthService. secret signs issued tokens;
// tokenTTL bounds their validity window.
func NewAuthService(repo UserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new account and returns its public profile.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (models.UserProfile, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("register: %w", err)
	}
	if exists {
		return models.UserProfile{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	rec := repository.UserRecord{
		Profile: models.UserProfile{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		},
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return models.UserProfile{}, fmt.Errorf("register: %w", err)
	}
	return rec.Profile, nil
}

// SignIn verifies credentials and issues a bearer session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (models.UserProfile, models.Session, error) {
	rec, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserProfile{}, models.Session{}, ErrInvalidCredentials
		}
		return models.UserProfile{}, models.Session{}, fmt.Errorf("sign in: %w", err)
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)) != nil {
		return models.UserProfile{}, models.Session{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   rec.Profile.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return models.UserProfile{}, models.Session{}, fmt.Errorf("sign token: %w", err)
	}

	session := models.Session{
		Token:              token,
		ExpiresAt:          expiresAt,
		LastVerifiedOnline: now,
	}
	return rec.Profile, session, nil
}

// VerifyToken parses and validates a bearer token, returning the user id
// it was issued to.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("verify token: missing subject")
	}
	return claims.Subject, nil
}
