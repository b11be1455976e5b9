// Package search implements the order search client.
//
// Two backend dialects are supported: a generic REST API and a Meilisearch
// full-text index. The dialect is resolved once from the configured base
// URL; each dialect has its own raw hit shape and its own normalization
// into the canonical orders.OrderLine. Search is best-effort: transport
// failures and shape mismatches yield empty results, never errors.
package search
