// Package client talks to the potato API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	intake "potato/pkg/intake/controllerImp"
	"potato/pkg/intake/types"
	rectypes "potato/pkg/recommend/types"
)

// UnreachableMessage is what HealthMessage reports when the backend cannot be
// reached or answers with something unreadable.
const UnreachableMessage = "Cannot reach backend"

const defaultTimeout = 10 * time.Second

type Client struct {
	base string
	hc   *http.Client
}

// New returns a client for the API rooted at baseURL. A zero timeout means
// ten seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// ValidationError is returned when the server rejects a form.
type ValidationError struct {
	Fields types.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form rejected: %d field error(s)", len(e.Fields))
}

// StatusError is any other non-2xx answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Code)
	}
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Message)
}

type healthResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthMessage never fails; any problem yields UnreachableMessage. A
// degraded backend still reports its own message.
func (c *Client) HealthMessage(ctx context.Context) string {
	_, raw, err := c.send(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return UnreachableMessage
	}
	var out healthResp
	if json.Unmarshal(raw, &out) != nil || out.Message == "" {
		return UnreachableMessage
	}
	return out.Message
}

func (c *Client) Submit(ctx context.Context, f types.Form) (*intake.SubmitResp, error) {
	var out intake.SubmitResp
	if err := c.do(ctx, http.MethodPost, "/api/v1/intake", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Recommend(ctx context.Context, f types.Form) (*rectypes.Result, error) {
	var out rectypes.Result
	if err := c.do(ctx, http.MethodPost, "/api/v1/recommendations", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecommendCapital(ctx context.Context, capital decimal.Decimal) (*rectypes.Result, error) {
	q := url.Values{"capital": {capital.String()}}
	var out rectypes.Result
	if err := c.do(ctx, http.MethodGet, "/api/v1/recommendations?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Sample(ctx context.Context) (*rectypes.Result, error) {
	var out rectypes.Result
	if err := c.do(ctx, http.MethodGet, "/api/v1/recommendations/sample", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	code, raw, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}

	switch {
	case code == http.StatusUnprocessableEntity:
		var v struct {
			Errors types.FieldErrors `json:"errors"`
		}
		if err := json.Unmarshal(raw, &v); err != nil || len(v.Errors) == 0 {
			return &StatusError{Code: code, Message: errorText(raw)}
		}
		return &ValidationError{Fields: v.Errors}
	case code < 200 || code > 299:
		return &StatusError{Code: code, Message: errorText(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func errorText(raw []byte) string {
	var v struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &v) == nil && v.Error != "" {
		return v.Error
	}
	return strings.TrimSpace(string(raw))
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
