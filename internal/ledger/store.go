package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tagsight/internal/orders"
)

// store mirrors the in-memory ledger into SQLite.
type store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func openStore(dbPath string) (*store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &store{db: db, path: dbPath}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *store) insert(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry.OrderLine)
	if err != nil {
		return fmt.Errorf("encode line payload: %w", err)
	}
	return s.execWithRetry(ctx,
		`INSERT INTO scan_lines (line_id, order_id, task_code, scan_id, scanned_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.OrderID, entry.TaskCodeFront, entry.ScanID,
		entry.ScannedAt.UTC().Format(time.RFC3339Nano), string(payload))
}

func (s *store) delete(ctx context.Context, lineID int64) error {
	return s.execWithRetry(ctx, "DELETE FROM scan_lines WHERE line_id = ?", lineID)
}

func (s *store) clear(ctx context.Context) error {
	return s.execWithRetry(ctx, "DELETE FROM scan_lines")
}

// list returns all persisted entries newest-first.
func (s *store) list(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT scan_id, scanned_at, payload FROM scan_lines ORDER BY seq DESC")
	if err != nil {
		return nil, fmt.Errorf("list scan lines: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			scanID    string
			scannedAt string
			payload   string
		)
		if err := rows.Scan(&scanID, &scannedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		var line orders.OrderLine
		if err := json.Unmarshal([]byte(payload), &line); err != nil {
			return nil, fmt.Errorf("decode line payload: %w", err)
		}
		entry := Entry{OrderLine: line, ScanID: scanID}
		if ts, err := time.Parse(time.RFC3339Nano, scannedAt); err == nil {
			entry.ScannedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
