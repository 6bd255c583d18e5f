// Package admin implements the operator dashboard's data path: log in
// against the session gate, fetch the registration collection once, and
// hand it to the in-memory query engine. Filter and sort changes never
// trigger another fetch.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/simoncdt/vericoupon/internal/model"
	"github.com/simoncdt/vericoupon/internal/query"
)

var (
	// ErrRejected is returned when the login credentials are refused.
	ErrRejected = errors.New("invalid credentials")

	// ErrNotAuthenticated is returned when a fetch runs without a live
	// session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Client talks to the admin endpoints of the registration service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Authenticated reports whether the client holds a session token. The
// token may still have expired server-side; FetchAll surfaces that as
// ErrNotAuthenticated.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Login authenticates the operator and stores the session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
			return fmt.Errorf("decode login response: %w", err)
		}
		c.token = out.Token
		return nil
	case http.StatusUnauthorized:
		return ErrRejected
	default:
		return fmt.Errorf("login failed: status %d", resp.StatusCode)
	}
}

// FetchAll retrieves the full registration collection and returns a
// query engine over the snapshot.
func (c *Client) FetchAll(ctx context.Context) (*query.Engine, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/enregistrements", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var regs []model.Registration
		if err := json.NewDecoder(resp.Body).Decode(&regs); err != nil {
			return nil, fmt.Errorf("decode registrations: %w", err)
		}
		return query.NewEngine(regs), nil
	case http.StatusUnauthorized:
		c.token = ""
		return nil, ErrNotAuthenticated
	default:
		return nil, fmt.Errorf("fetch failed: status %d", resp.StatusCode)
	}
}

// Logout revokes the session server-side and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/logout", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	c.token = ""

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	resp.Body.Close()
	return nil
}
