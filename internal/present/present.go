// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present projects a session snapshot into something a person can
// read: a list of rows with outbound links, a total phrase, and a pagination
// summary. Projection is pure; the writers render a View as an aligned table
// or as JSON.
package present

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/lapsed-patents/internal/patentid"
	"github.com/pdiddy/lapsed-patents/internal/session"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// Display strings.
const (
	NoGrantDate    = "—"
	IdleMessage    = "Search inactive U.S. patents by title keywords."
	LoadingMessage = "Searching…"
	EmptyMessage   = "No results. Try different keywords."
)

// Row is one hit paired with its canonical identifier and outbound link.
type Row struct {
	Patent    string        `json:"patent"`
	Title     string        `json:"title"`
	GrantDate string        `json:"grant_date"`
	Canonical string        `json:"canonical,omitempty"`
	Kind      patentid.Kind `json:"kind"`
	URL       string        `json:"url"`
	Fallback  bool          `json:"fallback,omitempty"`
}

// Label is the identifier shown to the user: the canonical form when the raw
// number was recognized, the raw number otherwise.
func (r Row) Label() string {
	if r.Canonical != "" {
		return r.Canonical
	}
	return r.Patent
}

// View is the read-only projection of a session.
type View struct {
	Status string      `json:"status"`
	Query  types.Query `json:"query"`

	// Headline combines the total phrase and the query description, e.g.
	// `Found 2 inactive patents for “valve” • sorted by grant date (desc)`.
	Headline    string `json:"headline,omitempty"`
	TotalPhrase string `json:"total_phrase,omitempty"`
	Description string `json:"description,omitempty"`

	// Summary is the range line, e.g. "Showing 21–40 of 1,234 results".
	Summary    string `json:"summary,omitempty"`
	Page       int    `json:"page"`
	PageCount  int    `json:"page_count"`
	RangeStart int    `json:"range_start"`
	RangeEnd   int    `json:"range_end"`
	Total      int    `json:"total"`

	Rows []Row `json:"results"`

	// Empty is set when a completed search matched nothing. It is distinct
	// from Idle, where no search has run.
	Empty      bool   `json:"empty"`
	Loading    bool   `json:"loading"`
	Failure    string `json:"failure,omitempty"`
	Validation string `json:"validation,omitempty"`

	// Message is the placeholder for states without rows.
	Message string `json:"message,omitempty"`
}

// HasResults reports whether the view carries a result set to display.
func (v View) HasResults() bool { return v.Headline != "" }

// Project builds the View for st. Rows come from the displayed result set,
// which during Loading and after a failure is the previous one.
func Project(st session.State, linker *patentid.Linker) View {
	v := View{
		Status:  st.Status.String(),
		Query:   st.Query.Clone(),
		Loading: st.Status == session.Loading,
		Failure: st.Failure,
		Page:    st.Page,
	}
	if st.Validation != nil {
		v.Validation = st.Validation.Message
	}

	switch st.Status {
	case session.Idle:
		v.Message = IdleMessage
	case session.Loading:
		v.Message = LoadingMessage
	}

	rs := st.Results
	if rs == nil {
		v.PageCount = 1
		return v
	}

	p := rs.Pagination()
	v.Page = p.Page
	v.PageCount = p.PageCount()
	v.RangeStart = p.RangeStart()
	v.RangeEnd = p.RangeEnd()
	v.Total = p.Total
	v.TotalPhrase = TotalPhrase(p.Total)
	v.Description = Describe(rs.Query)
	v.Headline = v.TotalPhrase
	if v.Description != "" {
		v.Headline += " " + v.Description
	}
	v.Summary = RangeSummary(p)

	v.Rows = make([]Row, 0, len(rs.Hits))
	for _, h := range rs.Hits {
		v.Rows = append(v.Rows, projectRow(h, linker))
	}

	if st.Status == session.Ready && len(rs.Hits) == 0 {
		v.Empty = true
		v.Message = EmptyMessage
	}
	return v
}

func projectRow(h types.Hit, linker *patentid.Linker) Row {
	link := linker.Link(h.Patent)
	row := Row{
		Patent:    h.Patent,
		Title:     h.Title,
		GrantDate: NoGrantDate,
		Kind:      link.Identifier.Kind,
		URL:       link.URL,
		Fallback:  link.Fallback,
	}
	if !link.Fallback {
		row.Canonical = link.Identifier.Canonical
	}
	if h.GrantDate != nil && *h.GrantDate != "" {
		row.GrantDate = *h.GrantDate
	}
	return row
}

// TotalPhrase returns "Found 1 inactive patent" or "Found 1,234 inactive
// patents".
func TotalPhrase(total int) string {
	if total == 1 {
		return "Found 1 inactive patent"
	}
	return fmt.Sprintf("Found %s inactive patents", humanize.Comma(int64(total)))
}

// Describe renders the query as it appears after the total phrase.
func Describe(q types.Query) string {
	var parts []string
	if text := strings.TrimSpace(q.Text); text != "" {
		parts = append(parts, fmt.Sprintf("for “%s”", text))
	}
	if q.YearFrom != nil {
		parts = append(parts, fmt.Sprintf("from %d", *q.YearFrom))
	}
	if q.YearTo != nil {
		parts = append(parts, fmt.Sprintf("to %d", *q.YearTo))
	}
	if q.SortBy.Valid() && q.SortDir.Valid() {
		parts = append(parts, fmt.Sprintf("sorted by %s (%s)", q.SortBy.Label(), q.SortDir))
	}
	return strings.Join(parts, " • ")
}

// RangeSummary returns "Showing a–b of N results", or an empty string when
// nothing matched.
func RangeSummary(p types.Pagination) string {
	if p.Total <= 0 {
		return ""
	}
	noun := "results"
	if p.Total == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Showing %s–%s of %s %s",
		humanize.Comma(int64(p.RangeStart())),
		humanize.Comma(int64(p.RangeEnd())),
		humanize.Comma(int64(p.Total)),
		noun)
}

// PageIndicator returns "page 2 of 7".
func (v View) PageIndicator() string {
	return fmt.Sprintf("page %d of %d", v.Page, v.PageCount)
}
