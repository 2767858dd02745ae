// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/lapsed-patents/internal/patentid"
	"github.com/pdiddy/lapsed-patents/internal/present"
	"github.com/pdiddy/lapsed-patents/internal/search"
	"github.com/pdiddy/lapsed-patents/internal/session"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search inactive patents by title",
	Long: `Search queries the inactive-patent backend for titles matching the given
keywords, optionally bounded by grant year, and prints one page of results
with a lookup link per patent.

Keywords come from --query or from the positional arguments. Pages beyond
the last are clamped to the last page.`,
	Example: `  lapsed-patents search check valve --year-from 2001 --year-to 2010
  lapsed-patents search --query nozzle --sort-by title --sort-dir asc --page 2
  lapsed-patents search nozzle --save nozzle.yaml
  lapsed-patents search --load nozzle.yaml --json
  lapsed-patents search --check`,
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd.Flags())
	rootCmd.AddCommand(searchCmd)
}

func addSearchFlags(flags *pflag.FlagSet) {
	flags.StringP("query", "q", "", "title keywords (default: positional arguments)")
	flags.Int("year-from", 0, "earliest grant year, inclusive (1976 or later)")
	flags.Int("year-to", 0, "latest grant year, inclusive")
	flags.String("sort-by", "", "sort field: date or title (default from config)")
	flags.String("sort-dir", "", "sort direction: asc or desc (default from config)")
	flags.Int("page", 1, "page number")
	flags.Bool("json", false, "output results as JSON")
	flags.String("save", "", "write the query and results to a YAML file")
	flags.String("load", "", "render a search saved with --save instead of querying")
	flags.Bool("check", false, "probe the backend health endpoint and exit")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")

	linker, err := patentid.NewLinker(cfg.Links)
	if err != nil {
		return err
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		client, _ := newClient(logger)
		if err := client.Health(ctx); err != nil {
			return fmt.Errorf("backend %s: %w", cfg.Backend.BaseURL, err)
		}
		fmt.Fprintf(out, "backend %s: ok\n", cfg.Backend.BaseURL)
		return nil
	}

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		st, err := loadSavedSearch(path)
		if err != nil {
			return err
		}
		return render(out, present.Project(st, linker), asJSON)
	}

	q, err := queryFromFlags(cmd, args)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")

	_, fetcher := newClient(logger)
	s := newSession(fetcher, logger, q.Text)

	searchErr := s.Submit(ctx, q)
	var verr *search.ValidationError
	if errors.As(searchErr, &verr) {
		return verr
	}
	if searchErr == nil && page != 1 {
		searchErr = s.ChangePage(ctx, page)
	}

	st := s.Snapshot()
	if err := render(out, present.Project(st, linker), asJSON); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" && st.Results != nil {
		if err := search.WriteQueryFile(path, *st.Results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved search to %s\n", path)
	}

	if searchErr != nil {
		return fmt.Errorf("search failed: %w", searchErr)
	}
	return nil
}

// queryFromFlags assembles the query. Year bounds are set only when their flag
// is given; unset sort flags fall back to the configured defaults.
func queryFromFlags(cmd *cobra.Command, args []string) (types.Query, error) {
	text, _ := cmd.Flags().GetString("query")
	if text == "" {
		text = strings.Join(args, " ")
	} else if len(args) > 0 {
		return types.Query{}, fmt.Errorf("use either --query or positional keywords, not both")
	}

	q := types.Query{
		Text:    text,
		SortBy:  cfg.Search.SortBy,
		SortDir: cfg.Search.SortDir,
	}
	if v, _ := cmd.Flags().GetString("sort-by"); v != "" {
		q.SortBy = types.SortField(v)
	}
	if v, _ := cmd.Flags().GetString("sort-dir"); v != "" {
		q.SortDir = types.SortDirection(v)
	}
	if cmd.Flags().Changed("year-from") {
		y, _ := cmd.Flags().GetInt("year-from")
		q.YearFrom = types.Year(y)
	}
	if cmd.Flags().Changed("year-to") {
		y, _ := cmd.Flags().GetInt("year-to")
		q.YearTo = types.Year(y)
	}
	return q, nil
}

// loadSavedSearch rebuilds a Ready snapshot from a file written by --save.
func loadSavedSearch(path string) (session.State, error) {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return session.State{}, err
	}
	if _, err := qf.Request(); err != nil {
		return session.State{}, fmt.Errorf("saved search %s: %w", path, err)
	}
	rs := qf.Results
	return session.State{
		Status:  session.Ready,
		Query:   qf.Query,
		Page:    qf.Page.Number,
		PerPage: qf.Page.PerPage,
		Results: &rs,
	}, nil
}

func render(w io.Writer, v present.View, asJSON bool) error {
	if asJSON {
		return present.WriteJSON(w, v)
	}
	return present.WriteTable(w, v)
}
