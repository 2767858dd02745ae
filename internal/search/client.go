// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lapsed-patents/internal/httputil"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// Client queries the inactive-patent search API over HTTP.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Logger    *zap.Logger
}

// NewClient returns a Client for cfg. A nil logger discards output.
func NewClient(cfg types.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		UserAgent: cfg.UserAgent,
		Logger:    logger.Named("backend"),
	}
}

// Fetch sends req to GET {BaseURL}/search. Every failure is returned as a
// *TransportError.
func (c *Client) Fetch(ctx context.Context, req Request) (Response, error) {
	reqURL := req.URL(c.BaseURL)
	start := time.Now()

	var resp Response
	err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.UserAgent, &resp)
	if err == nil {
		if verr := resp.validate(req.Page.PerPage); verr != nil {
			err = &httputil.DecodeError{Err: verr}
		}
	}

	if err != nil {
		terr := toTransportError(err)
		c.Logger.Warn("search request failed",
			zap.String("url", reqURL),
			zap.Int("status", terr.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Response{}, terr
	}

	c.Logger.Debug("search request done",
		zap.String("url", reqURL),
		zap.Int("total", resp.Total),
		zap.Int("results", len(resp.Results)),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// Health calls GET {BaseURL}/health and expects {"status":"ok"}.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := httputil.GetJSON(ctx, c.HTTP, c.BaseURL+"/health", c.UserAgent, &body); err != nil {
		return toTransportError(err)
	}
	if body.Status != "ok" {
		return &TransportError{Err: fmt.Errorf("%w: health status %q", errMalformed, body.Status)}
	}
	return nil
}

func toTransportError(err error) *TransportError {
	var se *httputil.StatusError
	if errors.As(err, &se) {
		return &TransportError{StatusCode: se.StatusCode, Err: err}
	}
	var de *httputil.DecodeError
	if errors.As(err, &de) {
		return &TransportError{Err: fmt.Errorf("%w: %v", errMalformed, de.Err)}
	}
	return &TransportError{Err: err}
}
