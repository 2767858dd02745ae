// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	headlineColor = color.New(color.Bold)
	warningColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	dimColor      = color.New(color.Faint)
)

// WriteTable renders v as a headline, a range line, and an aligned table of
// rows with their links. Failure and validation messages come first so the
// previous results below them read as stale.
func WriteTable(w io.Writer, v View) error {
	if v.Validation != "" {
		errorColor.Fprint(w, "error: ")
		fmt.Fprintln(w, v.Validation)
	}
	if v.Failure != "" {
		warningColor.Fprint(w, "warning: ")
		fmt.Fprintln(w, v.Failure)
	}

	if !v.HasResults() {
		if v.Message != "" {
			fmt.Fprintln(w, v.Message)
		}
		return nil
	}

	headlineColor.Fprintln(w, v.Headline)
	if v.Summary != "" {
		dimColor.Fprintf(w, "%s (%s)\n", v.Summary, v.PageIndicator())
	}
	if v.Empty {
		fmt.Fprintln(w, v.Message)
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATENT\tGRANTED\tTITLE\tLINK")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Label(), r.GrantDate, r.Title, r.URL)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing results table: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v View) error {
	if v.Rows == nil {
		v.Rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
