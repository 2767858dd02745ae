// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationDerivedValues(t *testing.T) {
	tests := []struct {
		name              string
		p                 Pagination
		pages, start, end int
	}{
		{"no results", Pagination{Page: 1, PerPage: 20, Total: 0}, 1, 0, 0},
		{"single partial page", Pagination{Page: 1, PerPage: 20, Total: 7}, 1, 1, 7},
		{"exact multiple", Pagination{Page: 5, PerPage: 20, Total: 100}, 5, 81, 100},
		{"last partial page", Pagination{Page: 3, PerPage: 20, Total: 41}, 3, 41, 41},
		{"middle page", Pagination{Page: 2, PerPage: 20, Total: 41}, 3, 21, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pages, tt.p.PageCount())
			assert.Equal(t, tt.start, tt.p.RangeStart())
			assert.Equal(t, tt.end, tt.p.RangeEnd())
		})
	}
}

func TestPaginationRangeIdentity(t *testing.T) {
	for _, perPage := range []int{1, 3, 20, 100} {
		for total := 1; total <= 250; total++ {
			pages := Pagination{PerPage: perPage, Total: total}.PageCount()
			for page := 1; page <= pages; page++ {
				p := Pagination{Page: page, PerPage: perPage, Total: total}
				got := p.RangeEnd() - p.RangeStart() + 1
				want := min(perPage, total-p.RangeStart()+1)
				if got != want {
					t.Fatalf("perPage=%d total=%d page=%d: range size %d, want %d", perPage, total, page, got, want)
				}
			}
		}
	}
}

func TestPaginationClamp(t *testing.T) {
	p := Pagination{Page: 1, PerPage: 20, Total: 100}
	assert.Equal(t, 1, p.Clamp(-5))
	assert.Equal(t, 1, p.Clamp(0))
	assert.Equal(t, 3, p.Clamp(3))
	assert.Equal(t, 5, p.Clamp(999))

	empty := Pagination{Page: 1, PerPage: 20}
	assert.Equal(t, 1, empty.Clamp(4))
}

func TestQueryClone(t *testing.T) {
	q := Query{Text: "valve", YearFrom: Year(2001), YearTo: Year(2010), SortBy: SortByTitle, SortDir: SortAsc}
	c := q.Clone()
	*c.YearFrom = 1999
	assert.Equal(t, 2001, *q.YearFrom)
	assert.Equal(t, q.Text, c.Text)
	assert.Equal(t, 2010, *c.YearTo)
}

func TestSortValidity(t *testing.T) {
	assert.True(t, SortByDate.Valid())
	assert.True(t, SortByTitle.Valid())
	assert.False(t, SortField("relevance").Valid())
	assert.True(t, SortAsc.Valid())
	assert.False(t, SortDirection("up").Valid())
	assert.Equal(t, "grant date", SortByDate.Label())
	assert.Equal(t, "title", SortByTitle.Label())
}
