// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns a query into a backend request and fetches result pages
// from the inactive-patent search API.
//
// Build validates a query and produces a deterministic Request. A Fetcher
// executes it: Client talks HTTP, CachedFetcher adds an in-memory response
// cache in front of any Fetcher.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Fetcher executes one search request. Implementations must be safe for
// concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Response is the JSON body of a successful /search call.
type Response struct {
	Q       string `json:"q"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Total   int    `json:"total"`
	Results []Hit  `json:"results"`
}

// Hit is one row of a Response.
type Hit struct {
	Patent    string  `json:"patent"`
	Title     string  `json:"title"`
	GrantDate *string `json:"grant_date,omitempty"`
}

// validate rejects bodies that contradict the backend contract.
func (r Response) validate(perPage int) error {
	if r.Total < 0 {
		return fmt.Errorf("negative total %d", r.Total)
	}
	if perPage > 0 && len(r.Results) > perPage {
		return fmt.Errorf("%d results exceed per_page %d", len(r.Results), perPage)
	}
	return nil
}

// TransportError reports a failed fetch: the network was unreachable, the
// backend answered with a non-2xx status, or the body was malformed. All
// three are retryable by a new user action.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search backend returned HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("search backend request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reason is a short message suitable for showing to the user.
func (e *TransportError) Reason() string {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return "The search service is busy. Try again in a moment."
	case e.StatusCode >= 500:
		return fmt.Sprintf("The search service is unavailable (HTTP %d). Try again.", e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("The search request was rejected (HTTP %d).", e.StatusCode)
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "The search timed out. Try again."
	case errors.Is(e.Err, errMalformed):
		return "The search service sent an unreadable response."
	default:
		return "Failed to fetch results. Check your connection and try again."
	}
}

// errMalformed marks decode and contract failures inside a TransportError.
var errMalformed = errors.New("malformed response")
