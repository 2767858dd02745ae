// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

func page1() types.Page { return types.Page{Number: 1, PerPage: 20} }

func TestBuildParams(t *testing.T) {
	tests := []struct {
		name  string
		query types.Query
		page  types.Page
		want  string
	}{
		{
			name:  "text only",
			query: types.Query{Text: "valve", SortBy: types.SortByDate, SortDir: types.SortDesc},
			page:  page1(),
			want:  "page=1&per_page=20&q=valve&sort_by=date&sort_dir=desc",
		},
		{
			name:  "trims and encodes text",
			query: types.Query{Text: "  polymer nozzle & co ", SortBy: types.SortByTitle, SortDir: types.SortAsc},
			page:  types.Page{Number: 3, PerPage: 50},
			want:  "page=3&per_page=50&q=polymer+nozzle+%26+co&sort_by=title&sort_dir=asc",
		},
		{
			name:  "both year bounds",
			query: types.Query{Text: "sensor", YearFrom: types.Year(2001), YearTo: types.Year(2010), SortBy: types.SortByDate, SortDir: types.SortDesc},
			page:  page1(),
			want:  "page=1&per_page=20&q=sensor&sort_by=date&sort_dir=desc&year_from=2001&year_to=2010",
		},
		{
			name:  "lower bound only",
			query: types.Query{Text: "sensor", YearFrom: types.Year(1976), SortBy: types.SortByDate, SortDir: types.SortDesc},
			page:  page1(),
			want:  "page=1&per_page=20&q=sensor&sort_by=date&sort_dir=desc&year_from=1976",
		},
		{
			name:  "equal bounds",
			query: types.Query{Text: "sensor", YearFrom: types.Year(2005), YearTo: types.Year(2005), SortBy: types.SortByDate, SortDir: types.SortDesc},
			page:  page1(),
			want:  "page=1&per_page=20&q=sensor&sort_by=date&sort_dir=desc&year_from=2005&year_to=2005",
		},
		{
			name:  "unicode text",
			query: types.Query{Text: "Kühlschrank", SortBy: types.SortByDate, SortDir: types.SortDesc},
			page:  page1(),
			want:  "page=1&per_page=20&q=K%C3%BChlschrank&sort_by=date&sort_dir=desc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(tt.query, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Encode())
		})
	}
}

func TestBuildOmitsUnsetYears(t *testing.T) {
	req, err := Build(types.Query{Text: "valve", SortBy: types.SortByDate, SortDir: types.SortDesc}, page1())
	require.NoError(t, err)

	params := req.Params()
	_, hasFrom := params["year_from"]
	_, hasTo := params["year_to"]
	assert.False(t, hasFrom)
	assert.False(t, hasTo)
}

func TestBuildDeterministic(t *testing.T) {
	a := types.Query{Text: "valve", YearFrom: types.Year(2001), YearTo: types.Year(2010), SortBy: types.SortByTitle, SortDir: types.SortAsc}
	b := types.Query{SortDir: types.SortAsc, SortBy: types.SortByTitle, YearTo: types.Year(2010), YearFrom: types.Year(2001), Text: " valve\t"}

	first, err := Build(a, page1())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Build(b, page1())
		require.NoError(t, err)
		assert.Equal(t, first.Encode(), again.Encode())
		assert.Equal(t, first.URL("http://api.test"), again.URL("http://api.test/"))
	}
}

func TestBuildRejects(t *testing.T) {
	ok := func() types.Query {
		return types.Query{Text: "valve", SortBy: types.SortByDate, SortDir: types.SortDesc}
	}
	tests := []struct {
		name   string
		mutate func(q *types.Query, p *types.Page)
		want   error
		field  string
	}{
		{"empty text", func(q *types.Query, _ *types.Page) { q.Text = "" }, ErrEmptyQueryText, "text"},
		{"whitespace text", func(q *types.Query, _ *types.Page) { q.Text = " \t\n " }, ErrEmptyQueryText, "text"},
		{"one character", func(q *types.Query, _ *types.Page) { q.Text = "a" }, ErrQueryTooShort, "text"},
		{"too long", func(q *types.Query, _ *types.Page) { q.Text = strings.Repeat("x", 129) }, ErrQueryTooLong, "text"},
		{"inverted years", func(q *types.Query, _ *types.Page) { q.YearFrom, q.YearTo = types.Year(2011), types.Year(2010) }, ErrInvalidYearRange, "year_from"},
		{"year from before index", func(q *types.Query, _ *types.Page) { q.YearFrom = types.Year(1975) }, ErrInvalidYearRange, "year_from"},
		{"year to before index", func(q *types.Query, _ *types.Page) { q.YearTo = types.Year(1900) }, ErrInvalidYearRange, "year_to"},
		{"unknown sort field", func(q *types.Query, _ *types.Page) { q.SortBy = "relevance" }, ErrInvalidSort, "sort_by"},
		{"missing sort direction", func(q *types.Query, _ *types.Page) { q.SortDir = "" }, ErrInvalidSort, "sort_dir"},
		{"page zero", func(_ *types.Query, p *types.Page) { p.Number = 0 }, ErrInvalidPage, "page"},
		{"per page too large", func(_ *types.Query, p *types.Page) { p.PerPage = 101 }, ErrInvalidPage, "per_page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, p := ok(), page1()
			tt.mutate(&q, &p)
			_, err := Build(q, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestBuildRejectsEveryInvertedRange(t *testing.T) {
	for from := types.MinGrantYear; from <= 2030; from += 3 {
		for to := types.MinGrantYear; to < from; to += 5 {
			q := types.Query{Text: "valve", YearFrom: types.Year(from), YearTo: types.Year(to), SortBy: types.SortByDate, SortDir: types.SortDesc}
			_, err := Build(q, page1())
			if !errors.Is(err, ErrInvalidYearRange) {
				t.Fatalf("from=%d to=%d: err = %v, want ErrInvalidYearRange", from, to, err)
			}
		}
	}
}

func TestBuildKeepsNormalizedQuery(t *testing.T) {
	from := 2001
	q := types.Query{Text: "  valve ", YearFrom: &from, SortBy: types.SortByDate, SortDir: types.SortDesc}
	req, err := Build(q, page1())
	require.NoError(t, err)

	assert.Equal(t, "valve", req.Query.Text)
	from = 1980
	assert.Equal(t, 2001, *req.Query.YearFrom, "request must not alias caller memory")
}

func TestRequestParamsIsCopy(t *testing.T) {
	req, err := Build(types.Query{Text: "valve", SortBy: types.SortByDate, SortDir: types.SortDesc}, page1())
	require.NoError(t, err)

	p := req.Params()
	p.Set("q", "tampered")
	assert.Contains(t, req.Encode(), "q=valve")
}
