// Package api is the HTTP client for the remote auth service. The service
// is an external collaborator: this package only speaks its boundary
// (register, login, current user) and owns no state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/idilsaglam/todoapp/internal/model"
)

// ErrUnauthorized marks a 401 from the service (expired or bad token).
var ErrUnauthorized = errors.New("unauthorized")

// Session is a successful register/login payload.
type Session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Client calls the auth API under BaseURL (e.g. "http://localhost:8000/api").
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out Session
	err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &out, "Registration failed")
	return out, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out Session
	err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out, "Login failed")
	return out, err
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out, "Failed to get user"); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// do runs one request. Non-2xx responses decode as {error} and that message
// becomes the returned error; fallback covers bodies without one.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Error
		if msg == "" {
			msg = fallback
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
		}
		return errors.New(msg)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// TokenExpiry peeks at the bearer token's JWT exp claim without verifying
// the signature (the key lives on the server). Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
