package terminal

import (
	"context"

	"tagsight/internal/logging"
	"tagsight/internal/orders"
)

// InventoryResult summarizes one inventory push.
type InventoryResult struct {
	Pushed  int  `json:"pushed"`
	Failed  int  `json:"failed"`
	Cleared bool `json:"cleared"`
}

// AddToInventory marks every ledger line as added to inventory on the
// backend, then clears the ledger. Per-line failures are counted and the
// rest of the batch continues; the ledger clears as long as at least one
// line made it, so the floor never re-scans work the backend already
// accepted.
func (t *Terminal) AddToInventory(ctx context.Context) (InventoryResult, error) {
	var result InventoryResult

	entries := t.ledger.Lines()
	if len(entries) == 0 {
		return result, nil
	}

	for _, entry := range entries {
		ok, err := t.backend.UpdateStatusCode(ctx, entry.ID, orders.InventoryStatusCode)
		if err != nil || !ok {
			result.Failed++
			t.logger.WarnContext(ctx, "inventory status push failed",
				logging.Int64(logging.FieldOrderID, entry.OrderID),
				logging.Int64(logging.FieldLineID, entry.ID),
				logging.Error(err))
			continue
		}
		result.Pushed++
	}

	if result.Pushed > 0 {
		if err := t.ledger.Clear(ctx); err != nil {
			t.notify(ctx, func() error { return t.notifier.NotifyError(ctx, err, "inventory ledger clear") })
			return result, err
		}
		result.Cleared = true
	}

	t.logger.InfoContext(ctx, "inventory push completed",
		logging.Int("pushed", result.Pushed),
		logging.Int("failed", result.Failed),
		logging.Bool("cleared", result.Cleared))
	t.notify(ctx, func() error { return t.notifier.NotifyInventoryPushed(ctx, result.Pushed, result.Failed) })
	return result, nil
}
