package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/api"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

func TestCreateTransaction_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/transactions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")
	err := c.CreateTransaction(context.Background(), models.QueuedTransaction{
		LocalID:  "l1",
		OwnerID:  "u1",
		Title:    "Coffee",
		Amount:   -4.5,
		Category: "Food & Drinks",
	})
	require.NoError(t, err)

	// The wire body carries exactly the remote contract's fields.
	require.Equal(t, "u1", got["user_id"])
	require.Equal(t, "Coffee", got["title"])
	require.Equal(t, -4.5, got["amount"])
	require.Equal(t, "Food & Drinks", got["category"])
	require.NotContains(t, got, "local_id")
	require.NotContains(t, got, "synced")
}

func TestCreateTransaction_RejectionCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "amount must be nonzero"})
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")
	err := c.CreateTransaction(context.Background(), models.QueuedTransaction{Title: "x"})
	require.EqualError(t, err, "amount must be nonzero")
}

func TestCreateTransaction_RejectionWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")
	err := c.CreateTransaction(context.Background(), models.QueuedTransaction{Title: "x"})
	require.EqualError(t, err, "Unknown error")
}

func TestTransactionsAndSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/transactions/u1":
			_ = json.NewEncoder(w).Encode([]models.Transaction{{ID: "t1", Title: "Coffee"}})
		case "/api/transactions/summary/u1":
			_ = json.NewEncoder(w).Encode(models.Summary{Balance: 95.5, Income: 100, Expenses: -4.5})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")

	txs, err := c.Transactions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "Coffee", txs[0].Title)

	s, err := c.Summary(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 95.5, s.Balance)
	require.Equal(t, -4.5, s.Expenses)
}

func TestDeleteTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/transactions/t1", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")
	c.SetToken("tok")
	require.NoError(t, c.DeleteTransaction(context.Background(), "t1"))
}

func TestSignIn(t *testing.T) {
	expires := time.Now().Add(7 * 24 * time.Hour).UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/signin", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "sign-in must not carry a stale token")
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":    models.UserProfile{ID: "u1", Email: "a@b.test"},
			"session": models.Session{Token: "tok", ExpiresAt: expires},
		})
	}))
	defer srv.Close()

	c := api.New(srv.Client(), srv.URL+"/api")
	c.SetToken("stale")

	resp, err := c.SignIn(context.Background(), "a@b.test", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User.ID)
	require.Equal(t, "tok", resp.Session.Token)
	require.Equal(t, expires, resp.Session.ExpiresAt)

	_, err = c.SignIn(context.Background(), "a@b.test", "wrong")
	require.EqualError(t, err, "sign in: invalid credentials")
}
