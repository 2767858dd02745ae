// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session owns the state of one interactive search: the current
// query and page, the last result set, and the loading/failure status.
//
// A Session issues requests through an injected search.Fetcher. Every request
// is tagged with a sequence number and only the response to the most recently
// issued request is applied, so results always follow the order in which the
// user asked for them, not the order in which responses arrive.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/lapsed-patents/internal/search"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	// Idle means no search has been issued, or the last one was discarded.
	Idle Status = iota
	// Loading means a request is in flight.
	Loading
	// Ready means the last request succeeded.
	Ready
	// Failed means the last request failed; earlier results are kept.
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	// ErrSuperseded is returned to the caller whose response arrived after a
	// newer request was issued. The response was dropped.
	ErrSuperseded = errors.New("response superseded by a newer request")

	// ErrNoActiveSearch is returned by ChangePage outside Ready and Failed.
	ErrNoActiveSearch = errors.New("page change requires a completed search")
)

// State is an immutable snapshot of a Session.
type State struct {
	// ID identifies the session in logs.
	ID     string
	Status Status

	// Query and Page describe the most recently issued request.
	Query   types.Query
	Page    int
	PerPage int

	// Results is the last successfully fetched result set, or nil. It is
	// shared between snapshots and must not be modified.
	Results *types.ResultSet

	// Failure is a user-facing reason for the last failed request.
	Failure string

	// Validation is set when the last submit was rejected before reaching
	// the network.
	Validation *search.ValidationError

	// Seq is the sequence number of the most recently issued request.
	Seq uint64
}

// Pagination returns the pagination of the displayed result set.
func (s State) Pagination() types.Pagination {
	if s.Results == nil {
		return types.Pagination{Page: s.Page, PerPage: s.PerPage}
	}
	return s.Results.Pagination()
}

// Session is safe for concurrent use. Fetches run outside the lock.
type Session struct {
	fetcher search.Fetcher
	logger  *zap.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithDefaultQuery sets the query a fresh session starts from (sort order,
// year bounds). The text is kept as a prefill only.
func WithDefaultQuery(q types.Query) Option {
	return func(s *Session) { s.state.Query = q.Clone() }
}

// New returns an Idle session. perPage is fixed for the session's lifetime.
func New(fetcher search.Fetcher, perPage int, opts ...Option) *Session {
	s := &Session{
		fetcher: fetcher,
		logger:  zap.NewNop(),
		state: State{
			ID:      uuid.NewString(),
			Status:  Idle,
			Query:   types.DefaultQuery(),
			Page:    1,
			PerPage: perPage,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.state.ID))
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Query = s.state.Query.Clone()
	return st
}

// ticket ties an issued request to its sequence number.
type ticket struct {
	seq uint64
	req search.Request
}

// Submit starts a new search for q at page 1. A query that fails validation
// leaves the state untouched apart from the validation message and returns
// the *search.ValidationError without contacting the backend.
//
// Submit blocks until the fetch completes. It returns nil when the response
// was applied, a *search.TransportError when the fetch failed, or
// ErrSuperseded when a newer request was issued in the meantime.
func (s *Session) Submit(ctx context.Context, q types.Query) error {
	s.mu.Lock()
	req, err := search.Build(q, types.Page{Number: 1, PerPage: s.state.PerPage})
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			s.state.Validation = verr
		}
		s.mu.Unlock()
		s.logger.Debug("submit rejected", zap.Error(err))
		return err
	}
	t := s.issueLocked(req)
	s.mu.Unlock()

	return s.run(ctx, t)
}

// ChangePage fetches page n of the current query. n is clamped to
// [1, PageCount] of the displayed result set, so a total that shrank between
// renders never produces an out-of-range request.
func (s *Session) ChangePage(ctx context.Context, n int) error {
	s.mu.Lock()
	if s.state.Status != Ready && s.state.Status != Failed {
		status := s.state.Status
		s.mu.Unlock()
		s.logger.Debug("page change ignored", zap.Stringer("status", status))
		return ErrNoActiveSearch
	}

	n = s.state.Pagination().Clamp(n)
	req, err := search.Build(s.state.Query, types.Page{Number: n, PerPage: s.state.PerPage})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	t := s.issueLocked(req)
	s.mu.Unlock()

	return s.run(ctx, t)
}

// Discard drops the displayed results and returns to Idle, keeping the query
// and page. Responses still in flight are ignored.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Seq++
	s.state.Status = Idle
	s.state.Results = nil
	s.state.Failure = ""
	s.state.Validation = nil
	s.logger.Debug("results discarded", zap.Uint64("seq", s.state.Seq))
}

func (s *Session) issueLocked(req search.Request) ticket {
	s.state.Seq++
	s.state.Status = Loading
	s.state.Query = req.Query.Clone()
	s.state.Page = req.Page.Number
	s.state.Validation = nil

	s.logger.Debug("request issued",
		zap.Uint64("seq", s.state.Seq),
		zap.String("params", req.Encode()))
	return ticket{seq: s.state.Seq, req: req}
}

func (s *Session) run(ctx context.Context, t ticket) error {
	resp, err := s.fetcher.Fetch(ctx, t.req)
	return s.apply(t, resp, err)
}

func (s *Session) apply(t ticket, resp search.Response, fetchErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.state.Seq {
		s.logger.Debug("stale response dropped",
			zap.Uint64("seq", t.seq),
			zap.Uint64("latest", s.state.Seq))
		return ErrSuperseded
	}

	if fetchErr != nil {
		var terr *search.TransportError
		if !errors.As(fetchErr, &terr) {
			terr = &search.TransportError{Err: fetchErr}
		}
		s.state.Status = Failed
		s.state.Failure = terr.Reason()
		s.logger.Debug("request failed", zap.Uint64("seq", t.seq), zap.Error(fetchErr))
		return terr
	}

	hits := make([]types.Hit, len(resp.Results))
	for i, h := range resp.Results {
		hits[i] = types.Hit{Patent: h.Patent, Title: h.Title}
		if h.GrantDate != nil {
			d := *h.GrantDate
			hits[i].GrantDate = &d
		}
	}

	s.state.Results = &types.ResultSet{
		Query:   t.req.Query.Clone(),
		Page:    t.req.Page.Number,
		PerPage: t.req.Page.PerPage,
		Total:   resp.Total,
		Hits:    hits,
	}
	s.state.Status = Ready
	s.state.Failure = ""

	s.logger.Debug("response applied",
		zap.Uint64("seq", t.seq),
		zap.Int("total", resp.Total),
		zap.Int("hits", len(hits)))
	return nil
}
