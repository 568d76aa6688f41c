// Package repository provides persistence implementations for the wallet
// backend (user accounts).
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// UserRecord is a stored account row: the public profile plus the
// credential hash, which never leaves the service layer.
type UserRecord struct {
	Profile      models.UserProfile
	PasswordHash []byte
}

// PostgresUserRepository implements account storage using a PostgreSQL
// database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a repository with the given database
// connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts a new account row.
func (r *PostgresUserRepository) Create(ctx context.Context, rec UserRecord) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.Profile.ID, rec.Profile.Email, rec.PasswordHash,
		rec.Profile.FirstName, rec.Profile.LastName, rec.Profile.ImageURL)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// ByEmail fetches an account by email. Returns sql.ErrNoRows when absent.
func (r *PostgresUserRepository) ByEmail(ctx context.Context, email string) (UserRecord, error) {
	var rec UserRecord
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, image_url
		  FROM users WHERE email = $1
	`, email).Scan(&rec.Profile.ID, &rec.Profile.Email, &rec.PasswordHash,
		&rec.Profile.FirstName, &rec.Profile.LastName, &rec.Profile.ImageURL)
	if err != nil {
		return UserRecord{}, err
	}
	return rec, nil
}

// EmailExists checks whether an account with the given email exists.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}
