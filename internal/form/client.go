package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/simoncdt/vericoupon/internal/model"
)

var (
	// ErrTransport is returned when the submission API could not be
	// reached. The caller may retry; the client never retries itself.
	ErrTransport = errors.New("submission service unreachable")

	// ErrServer is returned for a server-side failure (5xx).
	ErrServer = errors.New("submission service error")
)

// ValidationError carries the server's message for a rejected payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Client calls the submission API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
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

// submitResponse is the success envelope of POST /enregistrement.
type submitResponse struct {
	Message string              `json:"message"`
	Data    *model.Registration `json:"data"`
}

// errorResponse is the failure envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Submit posts one batch payload. A network failure maps to
// ErrTransport, a 400 to ValidationError with the server message, and
// anything else to ErrServer.
func (c *Client) Submit(ctx context.Context, req *model.CreateRegistrationRequest) (*model.Registration, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enregistrement", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		var out submitResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if out.Data == nil {
			return nil, fmt.Errorf("decode response: missing data")
		}
		return out.Data, nil

	case resp.StatusCode == http.StatusBadRequest:
		var out errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Error == "" {
			out.Error = "invalid request"
		}
		return nil, &ValidationError{Message: out.Error}

	default:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}
}
