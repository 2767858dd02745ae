// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by backend clients.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of a failed response body is kept for
// diagnostics.
const maxErrorBody = 512

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	// RetryAfter is the Retry-After header, if the server sent one.
	RetryAfter string
	// Body is the start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.RetryAfter != "" {
		msg += fmt.Sprintf(", retry after %s seconds", e.RetryAfter)
	}
	return msg
}

// Do executes req bound to ctx. Requests are never retried: a failed search
// is retried only by a new user action. Any non-2xx response is drained,
// closed and returned as a *StatusError.
func Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req.Clone(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
			Body:       string(body),
		}
	}
	return resp, nil
}

// GetJSON issues a GET to rawURL and decodes a 2xx JSON body into v.
// Decoding failures are wrapped in a *DecodeError so callers can tell them
// apart from transport failures.
func GetJSON(ctx context.Context, client *http.Client, rawURL, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := Do(ctx, client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// DecodeError reports a 2xx response whose body could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "parsing response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
