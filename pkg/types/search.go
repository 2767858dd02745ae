// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for lapsed-patents: the search
// query, the page descriptor, the result set returned by the search backend,
// and the configuration structs used by every stage.
package types

import "fmt"

// MinGrantYear is the earliest grant year covered by the inactive-patent index.
const MinGrantYear = 1976

// SortField selects the ordering key of a search.
type SortField string

const (
	SortByDate  SortField = "date"
	SortByTitle SortField = "title"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	return f == SortByDate || f == SortByTitle
}

// Label returns the human-readable name of the sort field.
func (f SortField) Label() string {
	if f == SortByTitle {
		return "title"
	}
	return "grant date"
}

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Valid reports whether d is a known sort direction.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Query holds the user-facing search parameters. A nil year bound means
// "unbounded" on that side.
type Query struct {
	// Text is the title search text. It is trimmed before use and must be
	// non-empty for a search to run.
	Text string `json:"text" yaml:"text"`

	// YearFrom is the inclusive lower bound on grant year.
	YearFrom *int `json:"year_from,omitempty" yaml:"year_from,omitempty"`

	// YearTo is the inclusive upper bound on grant year.
	YearTo *int `json:"year_to,omitempty" yaml:"year_to,omitempty"`

	SortBy  SortField     `json:"sort_by" yaml:"sort_by"`
	SortDir SortDirection `json:"sort_dir" yaml:"sort_dir"`
}

// DefaultQuery returns the query a new session starts with: empty text, no
// year bounds, newest grants first.
func DefaultQuery() Query {
	return Query{SortBy: SortByDate, SortDir: SortDesc}
}

// Clone returns a deep copy of q so snapshots never alias caller memory.
func (q Query) Clone() Query {
	c := q
	if q.YearFrom != nil {
		v := *q.YearFrom
		c.YearFrom = &v
	}
	if q.YearTo != nil {
		v := *q.YearTo
		c.YearTo = &v
	}
	return c
}

// Year returns a pointer to y, for building queries with year bounds.
func Year(y int) *int { return &y }

// Page identifies one page of results.
type Page struct {
	// Number is the 1-based page index.
	Number int `json:"page" yaml:"page"`

	// PerPage is the page size. It is fixed for the lifetime of a session.
	PerPage int `json:"per_page" yaml:"per_page"`
}

// Hit is one patent record returned by the search backend.
type Hit struct {
	// Patent is the patent number as returned by the backend (e.g. "US7654321").
	Patent string `json:"patent" yaml:"patent"`

	// Title is the invention title.
	Title string `json:"title" yaml:"title"`

	// GrantDate is the ISO (YYYY-MM-DD) grant date, when known.
	GrantDate *string `json:"grant_date,omitempty" yaml:"grant_date,omitempty"`
}

// ResultSet is the product of exactly one completed search request. It is
// replaced wholesale on every response and never mutated in place.
type ResultSet struct {
	// Query is a snapshot of the query at the time the request was issued.
	Query Query `json:"query" yaml:"query"`

	Page    int   `json:"page" yaml:"page"`
	PerPage int   `json:"per_page" yaml:"per_page"`
	Total   int   `json:"total" yaml:"total"`
	Hits    []Hit `json:"results" yaml:"results"`
}

// Pagination returns the pagination arithmetic for this result set.
func (r ResultSet) Pagination() Pagination {
	return Pagination{Page: r.Page, PerPage: r.PerPage, Total: r.Total}
}

// Pagination derives page counts and display ranges from a total.
type Pagination struct {
	Page    int
	PerPage int
	Total   int
}

// PageCount is max(1, ceil(Total/PerPage)).
func (p Pagination) PageCount() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// RangeStart is the 1-based index of the first hit on the page, or 0 when
// there are no hits.
func (p Pagination) RangeStart() int {
	if p.Total <= 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// RangeEnd is the 1-based index of the last hit on the page, or 0 when there
// are no hits.
func (p Pagination) RangeEnd() int {
	if p.Total <= 0 {
		return 0
	}
	return min(p.Page*p.PerPage, p.Total)
}

// Clamp limits n to [1, PageCount].
func (p Pagination) Clamp(n int) int {
	return max(1, min(n, p.PageCount()))
}

func (p Pagination) String() string {
	return fmt.Sprintf("page %d/%d (%d-%d of %d)", p.Page, p.PageCount(), p.RangeStart(), p.RangeEnd(), p.Total)
}
