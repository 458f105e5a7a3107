package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/clovermist/folio/internal/authservice"
)

const (
	tokenStorageKey      = "token"
	localPostsStorageKey = "blogPosts"
)

type loginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// Login authenticates against the API and persists the returned token so
// the session survives a restart.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Message == "" {
			return nil, fmt.Errorf("login failed with status %d", res.StatusCode)
		}
		return nil, errors.New(body.Message)
	}

	var user loginResponse
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("could not decode login response: %w", err)
	}

	stored, err := json.Marshal(user.Token)
	if err != nil {
		return nil, err
	}
	if err := c.storage.Set(tokenStorageKey, stored); err != nil {
		return nil, err
	}

	session := &Session{
		User: authservice.User{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Role:     user.Role,
		},
		Token: user.Token,
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	return session, nil
}

// RestoreSession rebuilds the session from the durably stored token. An
// absent, malformed, or expired token clears the stored value and returns
// ErrNoSession.
func (c *Client) RestoreSession() (*Session, error) {
	raw, ok := c.storage.Get(tokenStorageKey)
	if !ok {
		return nil, ErrNoSession
	}

	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		_ = c.storage.Delete(tokenStorageKey)
		return nil, ErrNoSession
	}

	claims, err := authservice.ParseUnverifiedClaims(token)
	if err != nil {
		c.logger.Info("discarding stored token", slog.String("reason", err.Error()))
		_ = c.storage.Delete(tokenStorageKey)
		return nil, ErrNoSession
	}

	session := &Session{
		User:  *claims.User(),
		Token: token,
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	return session, nil
}

// Logout discards the session. The token is never revoked server-side, so
// this is purely a client-side action.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	return c.storage.Delete(tokenStorageKey)
}

func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) IsAdmin() bool {
	session := c.Session()
	return session != nil && session.User.IsAdmin()
}
