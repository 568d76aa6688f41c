package queue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/store"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return New(fs, zap.NewNop())
}

func validDraft() models.TransactionDraft {
	return models.TransactionDraft{
		Title:    "Coffee",
		Amount:   "4.5",
		Category: "Food & Drinks",
		Type:     models.Expense,
	}
}

func TestEnqueue_AssignsUniqueLocalIDs(t *testing.T) {
	q := newTestQueue(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		d := validDraft()
		d.Title = fmt.Sprintf("tx %d", i)
		tx, err := q.Enqueue("u1", d)
		require.NoError(t, err)
		require.False(t, seen[tx.LocalID], "duplicate local id %s", tx.LocalID)
		seen[tx.LocalID] = true
	}
	require.Len(t, q.List(), 50)
}

func TestEnqueue_NormalizesSign(t *testing.T) {
	q := newTestQueue(t)

	expense, err := q.Enqueue("u1", validDraft())
	require.NoError(t, err)
	require.Equal(t, -4.5, expense.Amount)

	income, err := q.Enqueue("u1", models.TransactionDraft{
		Title:    "Paycheck",
		Amount:   "1200",
		Category: "Salary",
		Type:     models.Income,
	})
	require.NoError(t, err)
	require.Equal(t, 1200.0, income.Amount)
	require.False(t, income.Synced)
	require.False(t, income.CreatedAt.IsZero())
}

func TestEnqueue_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TransactionDraft)
	}{
		{"empty title", func(d *models.TransactionDraft) { d.Title = "   " }},
		{"empty amount", func(d *models.TransactionDraft) { d.Amount = "" }},
		{"non-numeric amount", func(d *models.TransactionDraft) { d.Amount = "abc" }},
		{"zero amount", func(d *models.TransactionDraft) { d.Amount = "0" }},
		{"nan amount", func(d *models.TransactionDraft) { d.Amount = "NaN" }},
		{"empty category", func(d *models.TransactionDraft) { d.Category = "" }},
		{"income category on expense", func(d *models.TransactionDraft) { d.Category = "Salary" }},
		{"unknown type", func(d *models.TransactionDraft) { d.Type = "transfer" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := newTestQueue(t)
			d := validDraft()
			tc.mutate(&d)
			_, err := q.Enqueue("u1", d)
			require.ErrorIs(t, err, ErrValidation)
			require.Empty(t, q.List(), "queue must not be mutated on validation failure")
		})
	}
}

func TestCountUnsynced_ReflectsPersistedState(t *testing.T) {
	q := newTestQueue(t)

	_, err := q.Enqueue("u1", validDraft())
	require.NoError(t, err)
	tx2, err := q.Enqueue("u1", validDraft())
	require.NoError(t, err)
	require.Equal(t, 2, q.CountUnsynced())

	// Mark one synced through Replace, as the sync engine does.
	all := q.List()
	for i := range all {
		if all[i].LocalID == tx2.LocalID {
			all[i].Synced = true
		}
	}
	require.NoError(t, q.Replace(all))
	require.Equal(t, 1, q.CountUnsynced())
}

func TestRemove(t *testing.T) {
	q := newTestQueue(t)

	tx1, err := q.Enqueue("u1", validDraft())
	require.NoError(t, err)
	tx2, err := q.Enqueue("u1", validDraft())
	require.NoError(t, err)

	require.NoError(t, q.Remove(tx1.LocalID))
	left := q.List()
	require.Len(t, left, 1)
	require.Equal(t, tx2.LocalID, left[0].LocalID)

	// Removing an unknown id is a no-op.
	require.NoError(t, q.Remove("missing"))
	require.Len(t, q.List(), 1)
}

type failingStore struct {
	readErr  error
	writeErr error
}

func (f *failingStore) Read(string) ([]byte, bool, error) { return nil, false, f.readErr }
func (f *failingStore) Write(string, []byte) error        { return f.writeErr }

func TestList_StorageFailureDegradesToEmpty(t *testing.T) {
	q := New(&failingStore{readErr: errors.New("disk gone")}, zap.NewNop())
	require.Empty(t, q.List())
	require.Zero(t, q.CountUnsynced())
}

func TestEnqueue_PersistFailureReturnsError(t *testing.T) {
	q := New(&failingStore{writeErr: errors.New("disk full")}, zap.NewNop())
	_, err := q.Enqueue("u1", validDraft())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrValidation)
}
