// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/pdiddy/lapsed-patents/internal/search"
	"github.com/pdiddy/lapsed-patents/internal/session"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

var warningPrefix = color.New(color.FgYellow, color.Bold)

// warnf prints a "warning:" line to w.
func warnf(w io.Writer, format string, args ...any) {
	warningPrefix.Fprint(w, "warning: ")
	fmt.Fprintf(w, format+"\n", args...)
}

// newClient returns the backend client and the fetcher sessions should use,
// which adds the response cache when search.cache_ttl is positive.
func newClient(l *zap.Logger) (*search.Client, search.Fetcher) {
	client := search.NewClient(cfg.Backend, l)
	return client, search.NewCachedFetcher(client, cfg.Search.CacheTTL, l)
}

// newSession starts a session seeded with the configured sort order.
func newSession(f search.Fetcher, l *zap.Logger, text string) *session.Session {
	q := types.DefaultQuery()
	q.Text = text
	q.SortBy = cfg.Search.SortBy
	q.SortDir = cfg.Search.SortDir
	return session.New(f, cfg.Search.PerPage,
		session.WithLogger(l),
		session.WithDefaultQuery(q))
}
