// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// QueryFile is the on-disk form of a saved search: the query, the page that
// was displayed, and that page's results. A saved search can be re-rendered
// without contacting the backend, or re-run to refresh it.
type QueryFile struct {
	Query   types.Query     `yaml:"query"`
	Page    types.Page      `yaml:"page"`
	Results types.ResultSet `yaml:"results"`
	Summary QuerySummary    `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Shown     int       `yaml:"shown"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves rs, and the query that produced it, to a YAML file.
func WriteQueryFile(path string, rs types.ResultSet) error {
	qf := QueryFile{
		Query:   rs.Query,
		Page:    types.Page{Number: rs.Page, PerPage: rs.PerPage},
		Results: rs,
		Summary: QuerySummary{
			Total:     rs.Total,
			Shown:     len(rs.Hits),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Request rebuilds the request for the saved query and page.
func (qf *QueryFile) Request() (Request, error) {
	return Build(qf.Query, qf.Page)
}
