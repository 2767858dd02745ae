// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lapsed-patents/internal/patentid"
	"github.com/pdiddy/lapsed-patents/internal/search"
	"github.com/pdiddy/lapsed-patents/internal/session"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

func init() {
	color.NoColor = true
}

func testLinker(t *testing.T) *patentid.Linker {
	t.Helper()
	l, err := patentid.NewLinker(types.LinksConfig{
		Mode:           types.LinkRecord,
		RecordTemplate: "https://patents.google.com/patent/{id}",
		SearchTemplate: "https://patents.google.com/?q={id}",
		FallbackURL:    "https://patents.google.com/",
	})
	require.NoError(t, err)
	return l
}

func readyState(total int, hits ...types.Hit) session.State {
	q := types.Query{Text: "valve", YearFrom: types.Year(2001), YearTo: types.Year(2010), SortBy: types.SortByDate, SortDir: types.SortDesc}
	return session.State{
		Status:  session.Ready,
		Query:   q,
		Page:    1,
		PerPage: 20,
		Results: &types.ResultSet{Query: q, Page: 1, PerPage: 20, Total: total, Hits: hits},
	}
}

func TestTotalPhrase(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, "Found 0 inactive patents"},
		{1, "Found 1 inactive patent"},
		{2, "Found 2 inactive patents"},
		{1234, "Found 1,234 inactive patents"},
		{1000000, "Found 1,000,000 inactive patents"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPhrase(tt.total))
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		query types.Query
		want  string
	}{
		{
			name:  "full",
			query: types.Query{Text: "valve", YearFrom: types.Year(2001), YearTo: types.Year(2010), SortBy: types.SortByDate, SortDir: types.SortDesc},
			want:  "for “valve” • from 2001 • to 2010 • sorted by grant date (desc)",
		},
		{
			name:  "title ascending",
			query: types.Query{Text: "nozzle", SortBy: types.SortByTitle, SortDir: types.SortAsc},
			want:  "for “nozzle” • sorted by title (asc)",
		},
		{
			name:  "upper bound only",
			query: types.Query{Text: "pump", YearTo: types.Year(1999), SortBy: types.SortByDate, SortDir: types.SortAsc},
			want:  "for “pump” • to 1999 • sorted by grant date (asc)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.query))
		})
	}
}

func TestRangeSummary(t *testing.T) {
	assert.Equal(t, "", RangeSummary(types.Pagination{Page: 1, PerPage: 20}))
	assert.Equal(t, "Showing 1–1 of 1 result", RangeSummary(types.Pagination{Page: 1, PerPage: 20, Total: 1}))
	assert.Equal(t, "Showing 21–40 of 1,234 results", RangeSummary(types.Pagination{Page: 2, PerPage: 20, Total: 1234}))
	assert.Equal(t, "Showing 1,221–1,234 of 1,234 results", RangeSummary(types.Pagination{Page: 62, PerPage: 20, Total: 1234}))
}

func TestProjectReady(t *testing.T) {
	date := "2011-08-16"
	st := readyState(2,
		types.Hit{Patent: "8000000", Title: "Polymer nozzle", GrantDate: &date},
		types.Hit{Patent: "D654321", Title: "Nozzle"},
	)

	v := Project(st, testLinker(t))
	assert.Equal(t, "ready", v.Status)
	assert.Equal(t, "Found 2 inactive patents for “valve” • from 2001 • to 2010 • sorted by grant date (desc)", v.Headline)
	assert.Equal(t, "Showing 1–2 of 2 results", v.Summary)
	assert.Equal(t, 1, v.PageCount)
	assert.False(t, v.Empty)
	assert.Empty(t, v.Message)

	require.Len(t, v.Rows, 2)
	assert.Equal(t, "US8000000", v.Rows[0].Label())
	assert.Equal(t, "2011-08-16", v.Rows[0].GrantDate)
	assert.Equal(t, patentid.KindUtility, v.Rows[0].Kind)
	assert.Equal(t, "https://patents.google.com/patent/US8000000", v.Rows[0].URL)

	assert.Equal(t, "USD654321", v.Rows[1].Canonical)
	assert.Equal(t, NoGrantDate, v.Rows[1].GrantDate)
	assert.Equal(t, patentid.KindDesign, v.Rows[1].Kind)
}

func TestProjectUnrecognizedIdentifierFallsBack(t *testing.T) {
	st := readyState(1, types.Hit{Patent: "pending", Title: "Valve assembly"})

	v := Project(st, testLinker(t))
	require.Len(t, v.Rows, 1)
	assert.True(t, v.Rows[0].Fallback)
	assert.Equal(t, "https://patents.google.com/", v.Rows[0].URL)
	assert.Equal(t, "pending", v.Rows[0].Label())
	assert.Equal(t, "Valve assembly", v.Rows[0].Title)
}

func TestProjectEmptyIsNotIdle(t *testing.T) {
	linker := testLinker(t)

	empty := Project(readyState(0), linker)
	assert.True(t, empty.Empty)
	assert.Equal(t, EmptyMessage, empty.Message)
	assert.Equal(t, "Found 0 inactive patents for “valve” • from 2001 • to 2010 • sorted by grant date (desc)", empty.Headline)
	assert.Empty(t, empty.Summary)

	idle := Project(session.State{Status: session.Idle, Page: 1, PerPage: 20, Query: types.DefaultQuery()}, linker)
	assert.False(t, idle.Empty)
	assert.False(t, idle.HasResults())
	assert.Equal(t, IdleMessage, idle.Message)
	assert.Equal(t, 1, idle.PageCount)
}

func TestProjectFailedKeepsRows(t *testing.T) {
	st := readyState(1, types.Hit{Patent: "7654321", Title: "Check valve"})
	st.Status = session.Failed
	st.Failure = "The search service is unavailable (HTTP 503). Try again."

	v := Project(st, testLinker(t))
	assert.Equal(t, "failed", v.Status)
	assert.Equal(t, st.Failure, v.Failure)
	assert.False(t, v.Empty)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "US7654321", v.Rows[0].Canonical)
}

func TestProjectLoadingAndValidation(t *testing.T) {
	st := readyState(1, types.Hit{Patent: "7654321", Title: "Check valve"})
	st.Status = session.Loading
	st.Validation = &search.ValidationError{Code: search.ErrInvalidYearRange, Field: "year_from", Message: "year_from 2011 is after year_to 2010"}

	v := Project(st, testLinker(t))
	assert.True(t, v.Loading)
	assert.Equal(t, LoadingMessage, v.Message)
	assert.Equal(t, "year_from 2011 is after year_to 2010", v.Validation)
	assert.Len(t, v.Rows, 1)
}

func TestWriteTable(t *testing.T) {
	date := "2011-08-16"
	st := readyState(41, types.Hit{Patent: "8000000", Title: "Polymer nozzle", GrantDate: &date}, types.Hit{Patent: "RE045821", Title: "Reissued valve"})
	st.Results.Page = 3
	st.Page = 3

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Project(st, testLinker(t))))
	out := buf.String()

	assert.Contains(t, out, "Found 41 inactive patents for “valve”")
	assert.Contains(t, out, "Showing 41–41 of 41 results (page 3 of 3)")
	assert.Contains(t, out, "PATENT")
	assert.Contains(t, out, "https://patents.google.com/patent/USRE045821")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[len(lines)-3]
	first := lines[len(lines)-2]
	assert.Equal(t, strings.Index(header, "GRANTED"), strings.Index(first, "2011-08-16"), "columns must align")
	assert.Contains(t, lines[len(lines)-1], NoGrantDate)
}

func TestWriteTableMessages(t *testing.T) {
	linker := testLinker(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Project(readyState(0), linker)))
	assert.Contains(t, buf.String(), EmptyMessage)
	assert.NotContains(t, buf.String(), "PATENT")

	buf.Reset()
	st := readyState(1, types.Hit{Patent: "7654321", Title: "Check valve"})
	st.Status = session.Failed
	st.Failure = "The search service is busy. Try again in a moment."
	require.NoError(t, WriteTable(&buf, Project(st, linker)))
	assert.True(t, strings.HasPrefix(buf.String(), "warning: The search service is busy."))
	assert.Contains(t, buf.String(), "US7654321")
}

func TestWriteJSON(t *testing.T) {
	st := readyState(1, types.Hit{Patent: "D123456", Title: "Chair"})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Project(st, testLinker(t))))

	var got struct {
		Status  string `json:"status"`
		Total   int    `json:"total"`
		Results []struct {
			Canonical string `json:"canonical"`
			Kind      string `json:"kind"`
			GrantDate string `json:"grant_date"`
			URL       string `json:"url"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ready", got.Status)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "USD123456", got.Results[0].Canonical)
	assert.Equal(t, "design", got.Results[0].Kind)
	assert.Equal(t, NoGrantDate, got.Results[0].GrantDate)
}

func TestWriteJSONIdleHasEmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Project(session.State{Status: session.Idle, Page: 1, PerPage: 20}, testLinker(t))))
	assert.Contains(t, buf.String(), `"results": []`)
}
