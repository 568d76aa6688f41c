// Package http provides HTTP handlers for the wallet transaction API.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PhantomXD-nepal/np-wallet/internal/middleware"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
	"github.com/PhantomXD-nepal/np-wallet/internal/service"
)

// TransactionService defines the interface for transaction operations
// required by the TransactionHandler.
type TransactionService interface {
	// Create validates and stores one transaction for a user.
	Create(ctx context.Context, userID, title string, amount float64, category string) (models.Transaction, error)
	// ByUser retrieves all live transactions for the given user.
	ByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	// Summary aggregates balance, income, and expenses for the user.
	Summary(ctx context.Context, userID string) (models.Summary, error)
	// Delete soft-deletes the transaction with the given id.
	Delete(ctx context.Context, id string) error
}

// TransactionHandler handles HTTP requests for transactions.
type TransactionHandler struct {
	TransactionService TransactionService
}

// createRequest is the JSON body for POST /api/transactions. The shape is
// what offline clients queue and replay, so it stays stable.
type createRequest struct {
	UserID   string  `json:"user_id"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Create handles POST /api/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	tx, err := h.TransactionService.Create(r.Context(), req.UserID, req.Title, req.Amount, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransaction) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(tx)
}

// ownsRequested reports whether the authenticated user may read data for
// userID. Tokens grant access to the subject's own records only.
func ownsRequested(r *http.Request, userID string) bool {
	return middleware.GetUserIDFromContext(r.Context()) == userID
}

// ByUser handles GET /api/transactions/{userId}.
func (h *TransactionHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !ownsRequested(r, userID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	txs, err := h.TransactionService.ByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(txs)
}

// Summary handles GET /api/transactions/summary/{userId}.
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !ownsRequested(r, userID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	s, err := h.TransactionService.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.TransactionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Transaction deleted successfully"})
}

// writeError sends the JSON error body clients decode on rejection.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
