// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lapsed-patents/internal/logging"
	"github.com/pdiddy/lapsed-patents/internal/patentid"
	"github.com/pdiddy/lapsed-patents/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [keywords...]",
	Short: "Search inactive patents interactively",
	Long: `Browse opens a full-screen search form. Type title keywords and optional
grant years, press enter to search, and page through results.

Keyboard shortcuts:
  enter        Search
  tab          Next field
  pgdn/ctrl+n  Next page
  pgup/ctrl+p  Previous page
  ctrl+t       Toggle sort field (grant date, title)
  ctrl+r       Toggle sort direction
  esc          Clear results
  ctrl+c       Quit

Log output is suppressed on the terminal while browsing; set log.file to keep it.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	linker, err := patentid.NewLinker(cfg.Links)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; only the file sink stays active.
	l, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	_, fetcher := newClient(l)
	s := newSession(fetcher, l, strings.Join(args, " "))
	return tui.Run(s, linker, cfg.Backend.Timeout)
}
