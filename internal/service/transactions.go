// Package service provides business-logic services for the wallet backend,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// ErrInvalidTransaction is returned when a submitted transaction fails
// server-side validation.
var ErrInvalidTransaction = errors.New("invalid transaction")

// TransactionRepository defines the persistence operations needed by the
// TransactionService.
type TransactionRepository interface {
	// Create inserts one transaction record.
	Create(ctx context.Context, tx models.Transaction) error
	// ByUser retrieves all live transactions for the given user.
	ByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	// Summary aggregates balance, income, and expenses for the user.
	Summary(ctx context.Context, userID string) (models.Summary, error)
	// Delete soft-deletes the transaction with the given id.
	Delete(ctx context.Context, id string) error
}

// TransactionService implements transaction business logic.
type TransactionService struct {
	// repo is the underlying persistence repository.
	repo TransactionRepository
}

// NewTransactionService constructs a TransactionService with the provided
// repository.
func NewTransactionService(repo TransactionRepository) *TransactionService {
	return &TransactionService{repo: repo}
}

// Create validates and stores a submitted transaction, assigning the id
// and creation time. Clients may retry a rejected submission; each accepted
// one becomes a distinct record.
func (s *TransactionService) Create(ctx context.Context, userID, title string, amount float64, category string) (models.Transaction, error) {
	if userID == "" {
		return models.Transaction{}, errors.Join(ErrInvalidTransaction, errors.New("user_id is required"))
	}
	if strings.TrimSpace(title) == "" {
		return models.Transaction{}, errors.Join(ErrInvalidTransaction, errors.New("title is required"))
	}
	if amount == 0 {
		return models.Transaction{}, errors.Join(ErrInvalidTransaction, errors.New("amount must be nonzero"))
	}
	if strings.TrimSpace(category) == "" {
		return models.Transaction{}, errors.Join(ErrInvalidTransaction, errors.New("category is required"))
	}

	tx := models.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Amount:    amount,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// ByUser returns all live transactions for the user.
func (s *TransactionService) ByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.repo.ByUser(ctx, userID)
}

// Summary returns the aggregate figures for the user.
func (s *TransactionService) Summary(ctx context.Context, userID string) (models.Summary, error) {
	return s.repo.Summary(ctx, userID)
}

// Delete soft-deletes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
