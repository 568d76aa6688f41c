// Package api is the typed HTTP client for the remote transaction and
// authentication endpoints. The backend is consumed as an opaque JSON API;
// this package owns request shaping and error decoding, nothing more.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// Client talks to the remote wallet backend.
type Client struct {
	http    *http.Client
	baseURL string

	mu    sync.Mutex
	token string
}

// New returns a Client for the given base URL ("https://host/api").
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

// SetToken sets the bearer token attached to protected requests. An empty
// token (after sign-out) sends them unauthenticated again.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// authorize attaches the bearer token, if one is set. Sign-in is the only
// endpoint that goes out without it.
func (c *Client) authorize(req *http.Request) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// remoteError is the JSON error body the backend returns on rejection.
type remoteError struct {
	Message string `json:"message"`
}

// CreateTransaction posts one transaction to the remote system of record.
// A non-2xx response is returned as an error carrying the backend's message.
func (c *Client) CreateTransaction(ctx context.Context, tx models.QueuedTransaction) error {
	body, err := json.Marshal(map[string]any{
		"user_id":  tx.OwnerID,
		"title":    tx.Title,
		"amount":   tx.Amount,
		"category": tx.Category,
	})
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var re remoteError
		if err := json.NewDecoder(resp.Body).Decode(&re); err != nil || re.Message == "" {
			re.Message = "Unknown error"
		}
		return fmt.Errorf("%s", re.Message)
	}
	return nil
}

// Transactions fetches all remote transactions for a user.
func (c *Client) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := c.getJSON(ctx, "/transactions/"+userID, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// Summary fetches the balance/income/expenses aggregate for a user.
func (c *Client) Summary(ctx context.Context, userID string) (models.Summary, error) {
	var s models.Summary
	if err := c.getJSON(ctx, "/transactions/summary/"+userID, &s); err != nil {
		return models.Summary{}, err
	}
	return s, nil
}

// DeleteTransaction removes a remote transaction by id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/transactions/"+id, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete transaction: %s", resp.Status)
	}
	return nil
}

// SignInResponse is what the identity provider returns on successful
// online sign-in: a profile snapshot and a bearer session.
type SignInResponse struct {
	User    models.UserProfile `json:"user"`
	Session models.Session     `json:"session"`
}

// SignIn performs an online sign-in against the identity endpoint.
func (c *Client) SignIn(ctx context.Context, email, password string) (SignInResponse, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/signin", bytes.NewReader(body))
	if err != nil {
		return SignInResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SignInResponse{}, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var re remoteError
		if err := json.NewDecoder(resp.Body).Decode(&re); err != nil || re.Message == "" {
			re.Message = resp.Status
		}
		return SignInResponse{}, fmt.Errorf("sign in: %s", re.Message)
	}

	var out SignInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return SignInResponse{}, fmt.Errorf("sign in: decode response: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}
