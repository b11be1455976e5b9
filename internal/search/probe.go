package search

import (
	"context"
	"net/http"

	"tagsight/internal/logging"
)

// probeFallbackPaths are tried in order when the dialect-specific probe is
// inconclusive.
var probeFallbackPaths = []string{"/", "/api", "/health"}

// TestConnection probes whether the configured backend is reachable and
// willing to serve this client. It walks a ladder: the real search
// endpoint first, then the dialect's health endpoint, then generic roots.
// An auth rejection anywhere is a definitive no; the server is up but the
// credentials are not accepted.
func (c *Client) TestConnection(ctx context.Context) bool {
	switch c.dialect {
	case DialectIndex:
		if ok, decided := c.probeIndex(ctx); decided {
			return ok
		}
	default:
		if ok, decided := c.probeREST(ctx); decided {
			return ok
		}
	}
	return c.probeFallback(ctx)
}

// probeIndex exercises the index search endpoint with a throwaway filter,
// then the Meilisearch /health endpoint. decided is false only when both
// probes failed at the transport level.
func (c *Client) probeIndex(ctx context.Context) (ok, decided bool) {
	req, err := c.newRequest(ctx, http.MethodPost, indexSearchPath, indexSearchRequest{
		Query:       "",
		Filter:      `task_code_front_prefix = "TEST"`,
		HitsPerPage: 1,
		Page:        1,
	})
	if err == nil {
		if status, err := c.do(req, nil); err == nil {
			if status == http.StatusOK {
				return true, true
			}
			if isAuthStatus(status) {
				return false, true
			}
		}
	}

	req, err = c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return false, false
	}
	status, err := c.do(req, nil)
	if err != nil {
		return false, false
	}
	if status == http.StatusOK {
		return true, true
	}
	return false, false
}

// probeREST exercises the order-details search endpoint with a throwaway
// code. A validation rejection still proves the endpoint exists, so 422
// counts as reachable.
func (c *Client) probeREST(ctx context.Context) (ok, decided bool) {
	req, err := c.newRequest(ctx, http.MethodPost, restSearchPath, restSearchRequest{
		TaskCode: "TEST",
		Limit:    1,
	})
	if err != nil {
		return false, false
	}
	status, err := c.do(req, nil)
	if err != nil {
		return false, false
	}
	switch {
	case status == http.StatusOK:
		return true, true
	case status == http.StatusUnprocessableEntity:
		return true, true
	case isAuthStatus(status):
		return false, true
	}
	return false, false
}

func (c *Client) probeFallback(ctx context.Context) bool {
	for _, path := range probeFallbackPaths {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			continue
		}
		status, err := c.do(req, nil)
		if err != nil {
			continue
		}
		if status == http.StatusOK || status == http.StatusNoContent {
			c.logger.InfoContext(ctx, "backend reachable via fallback probe",
				logging.String("path", path))
			return true
		}
		if isAuthStatus(status) {
			return false
		}
	}
	return false
}

func isAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
