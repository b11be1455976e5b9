package search

import (
	"net/url"
	"strings"
)

// Dialect identifies which backend response shape the client speaks.
type Dialect string

const (
	// DialectREST is the generic order-search REST API.
	DialectREST Dialect = "rest"
	// DialectIndex is the Meilisearch full-text index.
	DialectIndex Dialect = "index"
)

// meiliPort is the conventional Meilisearch listen port.
const meiliPort = "7700"

// DetectDialect inspects a base URL and picks the backend dialect. The
// well-known Meilisearch port or an /indexes path segment signals the
// search-index dialect; anything else is REST.
func DetectDialect(baseURL string) Dialect {
	parsed, err := url.Parse(baseURL)
	if err == nil && parsed.Host != "" {
		if parsed.Port() == meiliPort || strings.Contains(parsed.Path, "/indexes") {
			return DialectIndex
		}
		return DialectREST
	}
	if strings.Contains(baseURL, ":"+meiliPort) || strings.Contains(baseURL, "/indexes") {
		return DialectIndex
	}
	return DialectREST
}
