// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// Backend limits. Requests outside them are rejected locally instead of
// producing a guaranteed HTTP 422.
const (
	MinQueryLength = 2
	MaxQueryLength = 128
	MaxPerPage     = 100
)

// Validation sentinels. Every *ValidationError matches exactly one of them
// through errors.Is.
var (
	ErrEmptyQueryText   = errors.New("empty query text")
	ErrQueryTooShort    = errors.New("query text too short")
	ErrQueryTooLong     = errors.New("query text too long")
	ErrInvalidYearRange = errors.New("invalid year range")
	ErrInvalidSort      = errors.New("invalid sort")
	ErrInvalidPage      = errors.New("invalid page")
)

// ValidationError describes why a query cannot be sent. It never reaches the
// network.
type ValidationError struct {
	Code    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is matches the sentinel in Code.
func (e *ValidationError) Is(target error) bool { return e.Code == target }

func invalid(code error, field, msg string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: msg}
}

// Request is a validated, serializable search request.
type Request struct {
	// Query is the normalized query the request was built from.
	Query types.Query
	Page  types.Page

	params url.Values
}

// Params returns a copy of the request parameters.
func (r Request) Params() url.Values {
	out := make(url.Values, len(r.params))
	for k, v := range r.params {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Encode serializes the parameters with sorted keys. Identical logical
// queries always encode to identical strings, so the result doubles as a
// cache key.
func (r Request) Encode() string { return r.params.Encode() }

// URL joins base with the /search path and the encoded parameters.
func (r Request) URL(base string) string {
	return strings.TrimRight(base, "/") + "/search?" + r.Encode()
}

// Build validates q and p and returns the request to send. Year bounds are
// included only when set; absence means unbounded. Inverted year ranges are
// rejected, not corrected.
func Build(q types.Query, p types.Page) (Request, error) {
	text := strings.TrimSpace(q.Text)
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return Request{}, invalid(ErrEmptyQueryText, "text", "Enter a title keyword to search.")
	case n < MinQueryLength:
		return Request{}, invalid(ErrQueryTooShort, "text", "Search text must be at least 2 characters.")
	case n > MaxQueryLength:
		return Request{}, invalid(ErrQueryTooLong, "text", "Search text must be at most 128 characters.")
	}

	if q.YearFrom != nil && *q.YearFrom < types.MinGrantYear {
		return Request{}, invalid(ErrInvalidYearRange, "year_from", "Year from must be 1976 or later.")
	}
	if q.YearTo != nil && *q.YearTo < types.MinGrantYear {
		return Request{}, invalid(ErrInvalidYearRange, "year_to", "Year to must be 1976 or later.")
	}
	if q.YearFrom != nil && q.YearTo != nil && *q.YearFrom > *q.YearTo {
		return Request{}, invalid(ErrInvalidYearRange, "year_from", "Year from must not be after year to.")
	}

	if !q.SortBy.Valid() {
		return Request{}, invalid(ErrInvalidSort, "sort_by", "Sort by must be date or title.")
	}
	if !q.SortDir.Valid() {
		return Request{}, invalid(ErrInvalidSort, "sort_dir", "Sort order must be asc or desc.")
	}

	if p.Number < 1 {
		return Request{}, invalid(ErrInvalidPage, "page", "Page must be 1 or greater.")
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return Request{}, invalid(ErrInvalidPage, "per_page", "Page size must be between 1 and 100.")
	}

	norm := q.Clone()
	norm.Text = text

	params := url.Values{
		"q":        {text},
		"page":     {strconv.Itoa(p.Number)},
		"per_page": {strconv.Itoa(p.PerPage)},
		"sort_by":  {string(q.SortBy)},
		"sort_dir": {string(q.SortDir)},
	}
	if q.YearFrom != nil {
		params.Set("year_from", strconv.Itoa(*q.YearFrom))
	}
	if q.YearTo != nil {
		params.Set("year_to", strconv.Itoa(*q.YearTo))
	}

	return Request{Query: norm, Page: p, params: params}, nil
}
