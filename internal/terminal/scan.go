package terminal

import (
	"context"
	"strings"
	"time"

	"tagsight/internal/ledger"
	"tagsight/internal/logging"
	"tagsight/internal/services"
)

// Outcome classifies what a scan did to the ledger.
type Outcome string

const (
	// OutcomeAdded means at least one new line entered the ledger.
	OutcomeAdded Outcome = "added"
	// OutcomeDuplicate means every matched line was already recorded.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeNotFound means the backend matched nothing.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeIneligible means matches exist but none carry the accepted
	// status token.
	OutcomeIneligible Outcome = "ineligible"
	// OutcomeRejected means the input never reached the backend.
	OutcomeRejected Outcome = "rejected"
)

// ScanResult describes one processed scan.
type ScanResult struct {
	ScanID     string         `json:"scan_id"`
	TaskCode   string         `json:"task_code"`
	Outcome    Outcome        `json:"outcome"`
	TotalFound int            `json:"total_found"`
	ValidCount int            `json:"valid_count"`
	Added      int            `json:"added"`
	Duplicates int            `json:"duplicates"`
	Lines      []ledger.Entry `json:"lines,omitempty"`
	Printed    int            `json:"printed"`
	Artwork    []string       `json:"artwork,omitempty"`
}

// Scan processes one decoded task code end to end: backend lookup,
// eligibility vetting, ledger insertion, label push, artwork lookup.
func (t *Terminal) Scan(ctx context.Context, taskCode string) ScanResult {
	taskCode = strings.TrimSpace(taskCode)
	result := ScanResult{
		ScanID:   newScanID(),
		TaskCode: taskCode,
	}
	if taskCode == "" {
		result.Outcome = OutcomeRejected
		return result
	}

	ctx = services.WithScanID(ctx, result.ScanID)
	ctx = services.WithTaskCode(ctx, taskCode)
	logger := t.logger.With(
		logging.String(logging.FieldScanID, result.ScanID),
		logging.String(logging.FieldTaskCode, taskCode),
	)

	found := t.backend.Search(ctx, taskCode)
	result.TotalFound = found.TotalFound
	result.ValidCount = found.ValidCount

	switch {
	case found.TotalFound == 0:
		result.Outcome = OutcomeNotFound
		logger.InfoContext(ctx, "scan matched nothing")
		t.notify(ctx, func() error { return t.notifier.NotifyScanNotFound(ctx, taskCode) })
		return result
	case len(found.Lines) == 0:
		result.Outcome = OutcomeIneligible
		logger.WarnContext(ctx, "scan matched only ineligible lines",
			logging.Int("total_found", found.TotalFound))
		t.notify(ctx, func() error { return t.notifier.NotifyScanIneligible(ctx, taskCode, found.TotalFound) })
		return result
	}

	scannedAt := time.Now()
	for _, line := range found.Lines {
		entry := ledger.Entry{
			OrderLine: line,
			ScanID:    result.ScanID,
			ScannedAt: scannedAt,
		}
		added, err := t.ledger.Insert(ctx, entry)
		if err != nil {
			logger.ErrorContext(ctx, "ledger insert failed",
				logging.Int64(logging.FieldLineID, line.ID), logging.Error(err))
			t.notify(ctx, func() error { return t.notifier.NotifyError(ctx, err, "scan ledger") })
			continue
		}
		if !added {
			result.Duplicates++
			continue
		}
		result.Added++
		result.Lines = append(result.Lines, entry)

		if t.printer != nil && t.printer.Enabled() {
			barcode := line.TaskCodeFront
			if barcode == "" {
				barcode = taskCode
			}
			if t.printer.PrintBarcode(ctx, barcode, line) {
				result.Printed++
			}
		}
	}

	if t.artwork != nil {
		result.Artwork = t.artwork.FindForTaskCode(taskCode)
	}

	if result.Added == 0 {
		result.Outcome = OutcomeDuplicate
		logger.InfoContext(ctx, "scan already on ledger",
			logging.Int("duplicates", result.Duplicates))
		t.notify(ctx, func() error { return t.notifier.NotifyDuplicateScan(ctx, taskCode) })
		return result
	}

	result.Outcome = OutcomeAdded
	logger.InfoContext(ctx, "scan recorded",
		logging.Int("added", result.Added),
		logging.Int("duplicates", result.Duplicates),
		logging.Int("printed", result.Printed))
	t.notify(ctx, func() error { return t.notifier.NotifyScanMatched(ctx, taskCode, result.Added) })
	return result
}

// Remove drops one line from the ledger.
func (t *Terminal) Remove(ctx context.Context, lineID int64) (bool, error) {
	return t.ledger.Remove(ctx, lineID)
}

// Clear empties the ledger without touching the backend.
func (t *Terminal) Clear(ctx context.Context) error {
	return t.ledger.Clear(ctx)
}

// notify delivers a notification best-effort; a dead ntfy endpoint never
// affects the scan flow.
func (t *Terminal) notify(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		t.logger.WarnContext(ctx, "notification delivery failed", logging.Error(err))
	}
}
