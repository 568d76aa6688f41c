// Package models defines the core data structures for transactions,
// users, and cached sessions.
package models

import "time"

// TransactionType defines the set of valid transaction type identifiers.
type TransactionType string

const (
	// Expense represents money leaving the account; amounts are negative.
	Expense TransactionType = "expense"
	// Income represents money entering the account; amounts are positive.
	Income TransactionType = "income"
)

// TransactionDraft is the user-submitted form data for a new transaction,
// before validation and id assignment.
type TransactionDraft struct {
	// Title is the user-provided description of the transaction.
	Title string `json:"title"`
	// Amount is the raw amount as typed, non-negative; the sign is
	// derived from Type.
	Amount string `json:"amount"`
	// Category is the taxonomy entry the transaction belongs to.
	Category string `json:"category"`
	// Type selects between the expense and income category sets.
	Type TransactionType `json:"type"`
}

// QueuedTransaction is a transaction created while offline, pending
// confirmation by the remote system of record.
type QueuedTransaction struct {
	// LocalID is the device-unique identifier assigned at enqueue time.
	LocalID string `json:"local_id"`
	// OwnerID is the identifier of the user who created the transaction.
	OwnerID string `json:"user_id"`
	// Title is the user-provided description.
	Title string `json:"title"`
	// Amount is signed: negative for expenses, positive for income.
	Amount float64 `json:"amount"`
	// Category is the taxonomy entry, matching the sign of Amount.
	Category string `json:"category"`
	// CreatedAt is set at enqueue time and drives display ordering.
	CreatedAt time.Time `json:"created_at"`
	// Synced is false until the remote API accepts the record.
	Synced bool `json:"synced"`
}

// Transaction is a record as held by the remote system of record.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary holds the aggregate figures for a user's transactions.
type Summary struct {
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// UserProfile is the snapshot of profile attributes kept for offline display.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	ImageURL    string    `json:"image_url"`
	LastUpdated time.Time `json:"last_updated"`
}

// Session is the bearer session produced by the identity provider.
type Session struct {
	// Token is an opaque bearer credential, trusted at face value locally.
	Token string `json:"token"`
	// ExpiresAt is the absolute end of the session validity window.
	ExpiresAt time.Time `json:"expires_at"`
	// LastVerifiedOnline is when the online verification that produced
	// this snapshot happened.
	LastVerifiedOnline time.Time `json:"last_verified_online"`
}

// AuthData is the result of reading the offline auth cache.
type AuthData struct {
	User    UserProfile `json:"user"`
	Session Session     `json:"session"`
	// IsExpired is computed at read time; expired data is still
	// returned so callers can show last-known state read-only.
	IsExpired bool `json:"is_expired"`
}
