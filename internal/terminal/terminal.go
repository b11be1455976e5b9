package terminal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"tagsight/internal/config"
	"tagsight/internal/ledger"
	"tagsight/internal/logging"
	"tagsight/internal/notifications"
	"tagsight/internal/orders"
	"tagsight/internal/search"
)

// Backend is the slice of the search client the workflow consumes.
type Backend interface {
	Search(ctx context.Context, taskCode string) search.Result
	TestConnection(ctx context.Context) bool
	UpdateStatusCode(ctx context.Context, orderID int64, statusCode string) (bool, error)
	Dialect() search.Dialect
	BaseURL() string
}

// Printer is the slice of the print integration the workflow consumes.
type Printer interface {
	Enabled() bool
	PrintBarcode(ctx context.Context, barcode string, line orders.OrderLine) bool
	TestConnection(ctx context.Context) (bool, string)
}

// Artwork locates design files for scanned codes.
type Artwork interface {
	Configured() bool
	FindForTaskCode(taskCode string) []string
}

// Terminal holds the full application state for one scanning station.
type Terminal struct {
	cfg      *config.Config
	logger   *slog.Logger
	ledger   *ledger.Ledger
	backend  Backend
	printer  Printer
	artwork  Artwork
	notifier notifications.Service
}

// New assembles a terminal. notifier may be nil; it degrades to no-op.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	scans *ledger.Ledger,
	backend Backend,
	printer Printer,
	artwork Artwork,
	notifier notifications.Service,
) *Terminal {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(config.Notifications{})
	}
	return &Terminal{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "terminal"),
		ledger:   scans,
		backend:  backend,
		printer:  printer,
		artwork:  artwork,
		notifier: notifier,
	}
}

// Ledger exposes the scan ledger for read-side consumers.
func (t *Terminal) Ledger() *ledger.Ledger {
	return t.ledger
}

// Probe checks backend reachability.
func (t *Terminal) Probe(ctx context.Context) bool {
	return t.backend.TestConnection(ctx)
}

// TestPrinter exercises the print integration.
func (t *Terminal) TestPrinter(ctx context.Context) (bool, string) {
	if t.printer == nil {
		return false, "print integration not configured"
	}
	return t.printer.TestConnection(ctx)
}

// TestNotifications exercises the notification channel.
func (t *Terminal) TestNotifications(ctx context.Context) error {
	return t.notifier.TestNotification(ctx)
}

// Status is a point-in-time snapshot for status displays.
type Status struct {
	BackendURL     string `json:"backend_url"`
	Dialect        string `json:"dialect"`
	LedgerLines    int    `json:"ledger_lines"`
	LedgerOrders   int    `json:"ledger_orders"`
	PrinterEnabled bool   `json:"printer_enabled"`
	ArtworkDir     bool   `json:"artwork_dir"`
}

// Status reports the terminal's current state.
func (t *Terminal) Status() Status {
	s := Status{
		BackendURL:   t.backend.BaseURL(),
		Dialect:      string(t.backend.Dialect()),
		LedgerLines:  t.ledger.Len(),
		LedgerOrders: len(t.ledger.Grouped()),
	}
	if t.printer != nil {
		s.PrinterEnabled = t.printer.Enabled()
	}
	if t.artwork != nil {
		s.ArtworkDir = t.artwork.Configured()
	}
	return s
}

func newScanID() string {
	return uuid.NewString()
}
