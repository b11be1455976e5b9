package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"tagsight/internal/logging"
	"tagsight/internal/orders"
)

// Entry is one accepted scan: the canonical line plus when and under which
// scan id it entered the ledger.
type Entry struct {
	orders.OrderLine
	ScanID    string    `json:"scan_id"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Ledger is the authoritative scan state. All mutations persist before
// they become visible; reads come from the in-memory copy.
type Ledger struct {
	mu       sync.RWMutex
	store    *store
	entries  []Entry // newest first
	selected int64   // line id, zero means nothing selected
	logger   *slog.Logger
}

// Open loads the ledger from dbPath, creating it when absent. A database
// that cannot be read (corruption, stale schema) is rebuilt empty rather
// than blocking the terminal; scans matter more than history.
func Open(dbPath string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ledger")

	s, err := openStore(dbPath)
	if err != nil {
		logger.Warn("ledger database unreadable, rebuilding empty", logging.Error(err))
		removeDatabase(dbPath)
		s, err = openStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("rebuild ledger database: %w", err)
		}
	}

	entries, err := s.list(context.Background())
	if err != nil {
		logger.Warn("ledger rows unreadable, starting empty", logging.Error(err))
		if clearErr := s.clear(context.Background()); clearErr != nil {
			_ = s.Close()
			return nil, fmt.Errorf("reset unreadable ledger: %w", clearErr)
		}
		entries = nil
	}

	l := &Ledger{store: s, entries: entries, logger: logger}
	if len(entries) > 0 {
		l.selected = entries[0].ID
	}
	logger.Info("ledger opened", logging.Int("lines", len(entries)))
	return l, nil
}

func removeDatabase(dbPath string) {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
}

// Close releases the underlying database.
func (l *Ledger) Close() error {
	if l == nil {
		return nil
	}
	return l.store.Close()
}

// Insert adds a scanned line. A line id already present is a no-op
// returning false; the first-scanned entry wins and keeps its position.
// New entries go to the front and become the selection.
func (l *Ledger) Insert(ctx context.Context, entry Entry) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(entry.ID) >= 0 {
		l.logger.WarnContext(ctx, "duplicate scan ignored",
			logging.Int64(logging.FieldLineID, entry.ID),
			logging.String(logging.FieldTaskCode, entry.TaskCodeFront))
		return false, nil
	}
	if entry.ScannedAt.IsZero() {
		entry.ScannedAt = time.Now()
	}
	if err := l.store.insert(ctx, entry); err != nil {
		return false, fmt.Errorf("persist scan line: %w", err)
	}
	l.entries = append([]Entry{entry}, l.entries...)
	l.selected = entry.ID
	return true, nil
}

// Remove deletes a line by id, reporting whether it was present. Removing
// the selected line clears the selection.
func (l *Ledger) Remove(ctx context.Context, lineID int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(lineID)
	if idx < 0 {
		return false, nil
	}
	if err := l.store.delete(ctx, lineID); err != nil {
		return false, fmt.Errorf("delete scan line: %w", err)
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	if l.selected == lineID {
		l.selected = 0
	}
	return true, nil
}

// Clear empties the ledger.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.clear(ctx); err != nil {
		return fmt.Errorf("clear scan lines: %w", err)
	}
	l.entries = nil
	l.selected = 0
	return nil
}

// Lines returns a copy of all entries, newest first.
func (l *Ledger) Lines() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports how many lines the ledger holds.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Grouped partitions the current lines by parent order id.
func (l *Ledger) Grouped() map[int64][]orders.OrderLine {
	l.mu.RLock()
	defer l.mu.RUnlock()
	lines := make([]orders.OrderLine, len(l.entries))
	for i, entry := range l.entries {
		lines[i] = entry.OrderLine
	}
	return orders.GroupByOrder(lines)
}

// Select marks a line as the active selection, reporting whether the id
// exists.
func (l *Ledger) Select(lineID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(lineID) < 0 {
		return false
	}
	l.selected = lineID
	return true
}

// Selected returns the active entry, if any.
func (l *Ledger) Selected() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := l.indexOf(l.selected)
	if idx < 0 {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// Find returns the entry with the given line id.
func (l *Ledger) Find(lineID int64) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := l.indexOf(lineID)
	if idx < 0 {
		return Entry{}, false
	}
	return l.entries[idx], true
}

// indexOf must be called with the mutex held.
func (l *Ledger) indexOf(lineID int64) int {
	if lineID == 0 {
		return -1
	}
	for i, entry := range l.entries {
		if entry.ID == lineID {
			return i
		}
	}
	return -1
}
