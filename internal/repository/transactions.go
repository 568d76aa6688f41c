// Package repository provides persistence implementations for the wallet
// backend using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// PostgresTransactionRepository implements transaction storage against a
// PostgreSQL database.
type PostgresTransactionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTransactionRepository creates a repository using the provided
// *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{DB: db}
}

// Create inserts one transaction record.
func (r *PostgresTransactionRepository) Create(ctx context.Context, tx models.Transaction) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, title, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tx.ID, tx.UserID, tx.Title, tx.Amount, tx.Category, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ByUser fetches all live transactions for the given user, newest first.
func (r *PostgresTransactionRepository) ByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, title, amount, category, created_at
		  FROM transactions
		 WHERE user_id = $1 AND deleted = false
		 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("transactions by user: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Category, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Summary aggregates balance, income, and expenses for the given user.
// Users with no transactions get all-zero figures.
func (r *PostgresTransactionRepository) Summary(ctx context.Context, userID string) (models.Summary, error) {
	var s models.Summary
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0),
		       COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0)
		  FROM transactions
		 WHERE user_id = $1 AND deleted = false
	`, userID).Scan(&s.Balance, &s.Income, &s.Expenses)
	if err != nil {
		return models.Summary{}, fmt.Errorf("transaction summary: %w", err)
	}
	return s, nil
}

// Delete soft-deletes a transaction by id. Returns sql.ErrNoRows if no live
// row matched.
func (r *PostgresTransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE transactions SET deleted = true, deleted_at = now()
		 WHERE id = $1 AND deleted = false
	`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
