package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/clovermist/folio/internal/common"
)

// apiEnvelope mirrors the wire format of every blog API response.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// envelopeError turns the envelope's error payload into a Go error. Field
// error maps become a common.ValidationError so callers can show inline
// form messages.
func envelopeError(raw json.RawMessage) error {
	if len(raw) == 0 {
		return errors.New("request failed")
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		return common.ValidationError{Errors: fields}
	}

	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return errors.New(message)
	}

	return errors.New(string(raw))
}

// do sends a JSON request and decodes the envelope. The bearer token of the
// current session, when one exists, is attached to every request.
func (c *Client) do(ctx context.Context, method, path string, body any) (*apiEnvelope, int, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	if session := c.Session(); session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, res.StatusCode, fmt.Errorf("could not decode response: %w", err)
	}

	return &envelope, res.StatusCode, nil
}

// checkStatus maps the non-2xx statuses of the blog API onto the client's
// sentinel errors.
func checkStatus(status int, envelope *apiEnvelope) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case status == http.StatusForbidden:
		return ErrNotPermitted
	case status == http.StatusNotFound:
		return ErrPostNotFound
	default:
		return envelopeError(envelope.Error)
	}
}
