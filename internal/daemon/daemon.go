// Package daemon runs the long-lived scanning service: it owns the
// single-instance lock, the scan queue drain loop, and the scanner
// hotplug monitor, and exposes the terminal workflow to IPC.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"tagsight/internal/config"
	"tagsight/internal/logging"
	"tagsight/internal/notifications"
	"tagsight/internal/scanner"
	"tagsight/internal/terminal"
)

// ErrAlreadyRunning indicates another daemon owns the lock file.
var ErrAlreadyRunning = errors.New("another tagsightd instance is already running")

// Daemon wires the terminal workflow to its runtime surroundings.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	terminal *terminal.Terminal
	notifier notifications.Service

	lock    *flock.Flock
	queue   *scanner.Queue
	monitor *scanner.HotplugMonitor

	running atomic.Bool

	mu        sync.Mutex
	stopDrain context.CancelFunc
}

// New creates a daemon and claims the single-instance lock.
func New(cfg *config.Config, logger *slog.Logger, term *terminal.Terminal, notifier notifications.Service) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires configuration")
	}
	if term == nil {
		return nil, errors.New("daemon requires a terminal")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "daemon")
	if notifier == nil {
		notifier = notifications.NewService(config.Notifications{})
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		terminal: term,
		notifier: notifier,
		lock:     lock,
		queue:    scanner.NewQueue(cfg.Scanner.QueueSize, logger),
	}
	d.monitor = scanner.NewHotplugMonitor(cfg.Scanner, logger, d.handleHotplug)
	return d, nil
}

// Start begins draining queued scans and watching for scanner hotplug.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Swap(true) {
		return nil
	}

	drainCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.stopDrain = cancel
	d.mu.Unlock()

	go d.drainScans(drainCtx)
	if err := d.monitor.Start(ctx); err != nil {
		d.logger.Warn("hotplug monitor failed to start", logging.Error(err))
	}

	d.logger.Info("daemon started",
		logging.String(logging.FieldEventType, "daemon_start"),
		logging.Int("pid", os.Getpid()))
	return nil
}

// Stop halts scan processing. The ledger and lock survive for a restart.
func (d *Daemon) Stop() {
	if !d.running.Swap(false) {
		return
	}

	d.mu.Lock()
	if d.stopDrain != nil {
		d.stopDrain()
		d.stopDrain = nil
	}
	d.mu.Unlock()

	d.monitor.Stop()
	d.logger.Info("daemon stopped",
		logging.String(logging.FieldEventType, "daemon_stop"))
}

// Close stops the daemon and releases the instance lock.
func (d *Daemon) Close() {
	d.Stop()
	d.queue.Close()
	if d.lock != nil {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("release instance lock failed", logging.Error(err))
		}
	}
}

// Running reports whether the daemon is processing scans.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Terminal exposes the scan workflow to the IPC layer.
func (d *Daemon) Terminal() *terminal.Terminal {
	return d.terminal
}

// SubmitScan enqueues a decoded code for asynchronous processing,
// reporting whether the queue accepted it.
func (d *Daemon) SubmitScan(code string) bool {
	if !d.running.Load() {
		return false
	}
	return d.queue.Submit(code)
}

// Status is the daemon-level state snapshot.
type Status struct {
	Running      bool            `json:"running"`
	PID          int             `json:"pid"`
	LockPath     string          `json:"lock_path"`
	LedgerDBPath string          `json:"ledger_db_path"`
	PendingScans int             `json:"pending_scans"`
	Hotplug      bool            `json:"hotplug"`
	Terminal     terminal.Status `json:"terminal"`
}

// Status reports the daemon's current state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockPath:     d.cfg.LockPath(),
		LedgerDBPath: d.cfg.LedgerDBPath(),
		PendingScans: d.queue.Pending(),
		Hotplug:      d.monitor.Running(),
		Terminal:     d.terminal.Status(),
	}
}

// drainScans feeds queued codes through the terminal until the context
// ends.
func (d *Daemon) drainScans(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case code, ok := <-d.queue.Codes():
			if !ok {
				return
			}
			result := d.terminal.Scan(ctx, code)
			d.logger.Debug("queued scan processed",
				logging.String(logging.FieldTaskCode, code),
				logging.String("outcome", string(result.Outcome)))
		}
	}
}

// handleHotplug reacts to the barcode scanner attaching or detaching.
func (d *Daemon) handleHotplug(ctx context.Context, device string, attached bool) {
	if attached {
		if err := d.notifier.NotifyScannerAttached(ctx, device); err != nil {
			d.logger.Warn("scanner notification failed", logging.Error(err))
		}
		return
	}
	d.logger.Warn("barcode scanner detached",
		logging.String("device", device),
		logging.String(logging.FieldErrorHint, "check the USB connection before scanning"))
}
