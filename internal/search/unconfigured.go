package search

import (
	"context"

	"tagsight/internal/services"
)

// UnconfiguredBackend stands in when no backend URL has been set. Every
// lookup resolves empty and every mutation fails fast, so the terminal
// stays usable for ledger inspection while setup is pending.
type UnconfiguredBackend struct{}

// Unconfigured returns a backend placeholder for a terminal without a
// configured base URL.
func Unconfigured() UnconfiguredBackend {
	return UnconfiguredBackend{}
}

// Search resolves nothing.
func (UnconfiguredBackend) Search(context.Context, string) Result { return Result{} }

// TestConnection always fails.
func (UnconfiguredBackend) TestConnection(context.Context) bool { return false }

// UpdateStatusCode rejects the mutation.
func (UnconfiguredBackend) UpdateStatusCode(context.Context, int64, string) (bool, error) {
	return false, services.Wrap(services.ErrConfiguration, "search", "update status",
		"no backend configured", nil)
}

// Dialect defaults to REST.
func (UnconfiguredBackend) Dialect() Dialect { return DialectREST }

// BaseURL is empty until setup completes.
func (UnconfiguredBackend) BaseURL() string { return "" }
