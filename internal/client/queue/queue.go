// Package queue manages the offline transaction queue: transactions
// created while disconnected, waiting to be confirmed by the remote
// system of record.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/store"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// ErrValidation is wrapped by every enqueue rejection caused by malformed
// form input. Nothing is persisted when it is returned.
var ErrValidation = errors.New("invalid transaction")

// Store is the durable local store surface the queue needs.
type Store interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
}

// Queue is the sole owner of the offline transaction collection.
type Queue struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// New constructs a Queue over the given store.
func New(s Store, log *zap.Logger) *Queue {
	return &Queue{
		store: s,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Enqueue validates the draft, assigns a local id, and appends the new
// transaction to the persisted queue. The amount sign is normalized from
// the draft type: expenses become negative, income positive.
func (q *Queue) Enqueue(ownerID string, draft models.TransactionDraft) (models.QueuedTransaction, error) {
	var zero models.QueuedTransaction

	if strings.TrimSpace(draft.Title) == "" {
		return zero, fmt.Errorf("%w: title is required", ErrValidation)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(draft.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return zero, fmt.Errorf("%w: amount must be a number", ErrValidation)
	}
	if amount == 0 {
		return zero, fmt.Errorf("%w: amount must be nonzero", ErrValidation)
	}
	if draft.Type != models.Expense && draft.Type != models.Income {
		return zero, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, draft.Type)
	}
	if draft.Category == "" {
		return zero, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !models.ValidCategory(draft.Type, draft.Category) {
		return zero, fmt.Errorf("%w: unknown %s category %q", ErrValidation, draft.Type, draft.Category)
	}

	if draft.Type == models.Expense {
		amount = -math.Abs(amount)
	} else {
		amount = math.Abs(amount)
	}

	tx := models.QueuedTransaction{
		LocalID:   q.newID(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(draft.Title),
		Amount:    amount,
		Category:  draft.Category,
		CreatedAt: q.now(),
		Synced:    false,
	}

	existing := q.List()
	if err := q.persist(append(existing, tx)); err != nil {
		return zero, err
	}
	return tx, nil
}

// List returns the full current queue, synced and unsynced alike.
// A storage failure is logged and degrades to an empty queue.
func (q *Queue) List() []models.QueuedTransaction {
	b, ok, err := q.store.Read(store.KeyOfflineTransactions)
	if err != nil {
		q.log.Error("failed to read offline transactions", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var txs []models.QueuedTransaction
	if err := json.Unmarshal(b, &txs); err != nil {
		q.log.Error("failed to decode offline transactions", zap.Error(err))
		return nil
	}
	return txs
}

// CountUnsynced re-reads the store and returns how many queued items are
// still awaiting remote confirmation.
func (q *Queue) CountUnsynced() int {
	n := 0
	for _, tx := range q.List() {
		if !tx.Synced {
			n++
		}
	}
	return n
}

// Remove deletes one entry by local id. Used by the sync engine's pruning
// path; removing an unknown id is a no-op.
func (q *Queue) Remove(localID string) error {
	existing := q.List()
	kept := existing[:0]
	for _, tx := range existing {
		if tx.LocalID != localID {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(existing) {
		return nil
	}
	return q.persist(kept)
}

// Replace overwrites the stored queue with the given items. The sync
// engine uses this to persist only the items that remain unsynced.
func (q *Queue) Replace(txs []models.QueuedTransaction) error {
	return q.persist(txs)
}

func (q *Queue) persist(txs []models.QueuedTransaction) error {
	if txs == nil {
		txs = []models.QueuedTransaction{}
	}
	b, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode offline transactions: %w", err)
	}
	if err := q.store.Write(store.KeyOfflineTransactions, b); err != nil {
		return fmt.Errorf("persist offline transactions: %w", err)
	}
	return nil
}
