package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"shophub/internal/domain"

	"go.uber.org/zap"
)

// Client talks to the hosted users service over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a users service client. baseURL must not end in a slash.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type redirectURLResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type sessionRequest struct {
	Code string `json:"code"`
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
}

func (c *Client) RedirectURL(ctx context.Context) (string, error) {
	var resp redirectURLResponse
	if err := c.do(ctx, http.MethodGet, "/oauth/google/redirect_url", "", nil, &resp); err != nil {
		return "", fmt.Errorf("failed to get oauth redirect url: %w", err)
	}
	return resp.RedirectURL, nil
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrMissingCode
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/sessions", "", sessionRequest{Code: code}, &resp); err != nil {
		return "", fmt.Errorf("failed to exchange code for session token: %w", err)
	}

	if resp.SessionToken == "" {
		return "", fmt.Errorf("failed to exchange code for session token: empty token")
	}

	return resp.SessionToken, nil
}

func (c *Client) Validate(ctx context.Context, sessionToken string) (*domain.User, error) {
	if sessionToken == "" {
		return nil, ErrInvalidSession
	}

	user := &domain.User{}
	if err := c.do(ctx, http.MethodGet, "/users/me", sessionToken, nil, user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		return nil, ErrInvalidSession
	}

	return user, nil
}

func (c *Client) Revoke(ctx context.Context, sessionToken string) error {
	err := c.do(ctx, http.MethodDelete, "/sessions", sessionToken, nil, nil)
	if errors.Is(err, ErrInvalidSession) {
		return nil
	}
	return err
}

// do sends one request. A 401 from the service maps to ErrInvalidSession.
func (c *Client) do(ctx context.Context, method, path, sessionToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("users service request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Users service call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidSession
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("users service returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode users service response: %w", err)
	}

	return nil
}
