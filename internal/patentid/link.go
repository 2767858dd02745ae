// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patentid

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// idPlaceholder is replaced by the escaped canonical identifier in link templates.
const idPlaceholder = "{id}"

// Link is an outbound URL for one raw patent number.
type Link struct {
	Identifier Identifier `json:"identifier" yaml:"identifier"`

	// URL always points somewhere useful: the provider record or search for
	// the canonical identifier, or the generic fallback page.
	URL string `json:"url" yaml:"url"`

	// Fallback reports whether URL is the generic page because the raw
	// number could not be canonicalized.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// Linker builds outbound links with one template for its whole lifetime, so
// every link produced in a session has the same meaning (exact record or
// best-effort search).
type Linker struct {
	mode     types.LinkMode
	template string
	escape   func(string) string
	fallback string
}

// NewLinker selects the template for cfg.Mode.
func NewLinker(cfg types.LinksConfig) (*Linker, error) {
	l := &Linker{mode: cfg.Mode, fallback: cfg.FallbackURL}

	switch cfg.Mode {
	case types.LinkRecord:
		l.template = cfg.RecordTemplate
		l.escape = url.PathEscape
	case types.LinkSearch:
		l.template = cfg.SearchTemplate
		l.escape = url.QueryEscape
	default:
		return nil, fmt.Errorf("unknown link mode %q: use %q or %q", cfg.Mode, types.LinkRecord, types.LinkSearch)
	}

	if !strings.Contains(l.template, idPlaceholder) {
		return nil, fmt.Errorf("%s link template %q has no %s placeholder", cfg.Mode, l.template, idPlaceholder)
	}
	if l.fallback == "" {
		return nil, fmt.Errorf("fallback URL is required")
	}
	return l, nil
}

// Mode returns the link mode fixed at construction.
func (l *Linker) Mode() types.LinkMode { return l.mode }

// Link canonicalizes raw and renders its URL. Unrecognized identifiers get the
// fallback page instead of a dead link; other errors cannot occur.
func (l *Linker) Link(raw string) Link {
	id, err := Canonicalize(raw)
	if errors.Is(err, ErrUnrecognizedIdentifier) {
		return Link{Identifier: id, URL: l.fallback, Fallback: true}
	}
	return Link{
		Identifier: id,
		URL:        strings.ReplaceAll(l.template, idPlaceholder, l.escape(id.Canonical)),
	}
}
