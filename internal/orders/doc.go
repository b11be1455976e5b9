// Package orders defines the canonical order-line record shared by the
// search client, the scan ledger, and the print/export integrations.
package orders
