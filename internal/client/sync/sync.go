// Package sync drains the offline transaction queue against the remote
// transaction API. At most one drain runs at a time process-wide; overlapping
// trigger requests are rejected, not queued.
package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/netmon"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// Remote is the slice of the remote API the engine needs.
type Remote interface {
	CreateTransaction(ctx context.Context, tx models.QueuedTransaction) error
}

// TransactionQueue is the queue surface the engine drains.
type TransactionQueue interface {
	List() []models.QueuedTransaction
	Replace(txs []models.QueuedTransaction) error
	CountUnsynced() int
}

// ItemError records one transaction the remote rejected during a drain.
type ItemError struct {
	// Title identifies the transaction to the user.
	Title string `json:"transaction"`
	// Err is the remote or transport error message.
	Err string `json:"error"`
}

// Result is the structured outcome of one sync invocation. It is never
// persisted; callers surface it however they present things.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Count is the number of items that remain unsynced.
	Count int `json:"count"`
	// IsAlreadySyncing marks a rejection because a drain was in flight.
	IsAlreadySyncing bool        `json:"is_already_syncing,omitempty"`
	Errors           []ItemError `json:"errors,omitempty"`
}

// DefaultGuardDelay is how long the single-flight lock stays held after a
// drain completes, absorbing near-simultaneous trigger events.
const DefaultGuardDelay = 2 * time.Second

// Engine reconciles the offline queue with the remote system of record.
// Triggering is manual only; connectivity is checked per invocation.
type Engine struct {
	queue   TransactionQueue
	remote  Remote
	network netmon.Checker
	log     *zap.Logger

	// GuardDelay overrides DefaultGuardDelay when positive; tests shrink it.
	GuardDelay time.Duration

	mu      sync.Mutex
	syncing bool
}

// New constructs an Engine. All collaborators are required.
func New(q TransactionQueue, remote Remote, network netmon.Checker, log *zap.Logger) *Engine {
	return &Engine{
		queue:      q,
		remote:     remote,
		network:    network,
		log:        log,
		GuardDelay: DefaultGuardDelay,
	}
}

// tryAcquire flips the single-flight flag; false means a drain is running.
func (e *Engine) tryAcquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.syncing {
		return false
	}
	e.syncing = true
	return true
}

// release frees the single-flight flag after the guard delay.
func (e *Engine) release() {
	delay := e.GuardDelay
	if delay <= 0 {
		delay = DefaultGuardDelay
	}
	time.AfterFunc(delay, func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
		e.log.Debug("sync lock released")
	})
}

// Trigger runs one drain of the queue.
//
// Items are attempted oldest first, each exactly once; a rejection never
// aborts the batch. Afterward only the items that remain unsynced are
// persisted back, which is the sole deletion path for accepted items.
// Nothing here returns an error: every outcome is a Result.
func (e *Engine) Trigger(ctx context.Context) Result {
	if !e.tryAcquire() {
		e.log.Debug("sync already in progress, skipping")
		return Result{
			Success:          false,
			Message:          "Sync already in progress",
			IsAlreadySyncing: true,
		}
	}
	defer e.release()

	if !e.network.Fetch(ctx) {
		return Result{Success: false, Message: "No internet connection"}
	}

	all := e.queue.List()
	if len(all) == 0 {
		return Result{Success: true, Message: "No offline transactions to sync", Count: 0}
	}

	unsynced := 0
	for _, tx := range all {
		if !tx.Synced {
			unsynced++
		}
	}
	if unsynced == 0 {
		return Result{Success: true, Message: "No unsynced transactions", Count: 0}
	}

	e.log.Info("starting sync", zap.Int("unsynced", unsynced), zap.Int("total", len(all)))

	var (
		successful int
		failures   []ItemError
	)
	for i := range all {
		tx := &all[i]
		if tx.Synced {
			successful++
			continue
		}
		if err := e.remote.CreateTransaction(ctx, *tx); err != nil {
			failures = append(failures, ItemError{Title: tx.Title, Err: err.Error()})
			e.log.Warn("failed to sync transaction",
				zap.String("title", tx.Title), zap.Error(err))
			continue
		}
		tx.Synced = true
		successful++
		e.log.Info("synced transaction", zap.String("title", tx.Title))
	}

	// Keep only failed items; accepted ones are pruned from storage.
	remaining := make([]models.QueuedTransaction, 0, len(failures))
	for _, tx := range all {
		if !tx.Synced {
			remaining = append(remaining, tx)
		}
	}
	if err := e.queue.Replace(remaining); err != nil {
		e.log.Error("failed to persist queue after sync", zap.Error(err))
		return Result{
			Success: false,
			Message: "Failed to sync: " + err.Error(),
			Count:   e.queue.CountUnsynced(),
			Errors:  failures,
		}
	}

	return Result{
		Success: len(failures) == 0,
		Message: fmt.Sprintf("Synced %d of %d transactions", successful, len(all)),
		Count:   len(failures),
		Errors:  failures,
	}
}
