package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tagsight/internal/orders"
)

func testEntry(lineID, orderID int64, taskCode string) Entry {
	return Entry{
		OrderLine: orders.OrderLine{
			ID:            lineID,
			OrderID:       orderID,
			TaskCodeFront: taskCode,
			StatusCode:    orders.ValidStatusCode,
			Quantity:      1,
		},
		ScanID: "scan-" + taskCode,
	}
}

func openTestLedger(t *testing.T, dbPath string) *Ledger {
	t.Helper()
	l, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestInsertOrdersNewestFirst(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	for i, code := range []string{"AA1", "BB2", "CC3"} {
		added, err := l.Insert(ctx, testEntry(int64(i+1), 100, code))
		if err != nil || !added {
			t.Fatalf("Insert(%s) = (%v, %v)", code, added, err)
		}
	}

	lines := l.Lines()
	if len(lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(lines))
	}
	if lines[0].TaskCodeFront != "CC3" || lines[2].TaskCodeFront != "AA1" {
		t.Errorf("order = [%s %s %s], want newest first",
			lines[0].TaskCodeFront, lines[1].TaskCodeFront, lines[2].TaskCodeFront)
	}
	if selected, ok := l.Selected(); !ok || selected.ID != 3 {
		t.Errorf("Selected = (%+v, %v), want newest entry", selected, ok)
	}
}

func TestInsertDuplicateIsNoOp(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	first := testEntry(7, 100, "AA1")
	first.CustomerName = "original"
	if added, err := l.Insert(ctx, first); !added || err != nil {
		t.Fatalf("first Insert = (%v, %v)", added, err)
	}

	dup := testEntry(7, 100, "AA1")
	dup.CustomerName = "replacement"
	added, err := l.Insert(ctx, dup)
	if err != nil {
		t.Fatalf("duplicate Insert: %v", err)
	}
	if added {
		t.Fatal("duplicate line id must not be re-added")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	if entry, _ := l.Find(7); entry.CustomerName != "original" {
		t.Errorf("CustomerName = %q, first-scanned entry must win", entry.CustomerName)
	}
}

func TestRemove(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	l.Insert(ctx, testEntry(1, 100, "AA1"))
	l.Insert(ctx, testEntry(2, 100, "BB2"))

	if removed, err := l.Remove(ctx, 99); removed || err != nil {
		t.Fatalf("Remove(absent) = (%v, %v), want no-op", removed, err)
	}

	// Entry 2 is the selection; removing it clears the selection.
	if removed, err := l.Remove(ctx, 2); !removed || err != nil {
		t.Fatalf("Remove(2) = (%v, %v)", removed, err)
	}
	if _, ok := l.Selected(); ok {
		t.Error("selection must clear when the selected line is removed")
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	l := openTestLedger(t, dbPath)
	l.Insert(ctx, testEntry(1, 100, "AA1"))
	l.Insert(ctx, testEntry(2, 200, "BB2"))
	l.Insert(ctx, testEntry(3, 100, "CC3"))
	l.Remove(ctx, 2)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openTestLedger(t, dbPath)
	lines := reopened.Lines()
	if len(lines) != 2 {
		t.Fatalf("len after reopen = %d, want 2", len(lines))
	}
	if lines[0].ID != 3 || lines[1].ID != 1 {
		t.Errorf("ids = (%d, %d), want newest-first (3, 1)", lines[0].ID, lines[1].ID)
	}
	if lines[0].ScanID != "scan-CC3" {
		t.Errorf("ScanID = %q, want preserved", lines[0].ScanID)
	}
	if selected, ok := reopened.Selected(); !ok || selected.ID != 3 {
		t.Errorf("Selected after reopen = (%+v, %v), want newest", selected, ok)
	}
}

func TestCorruptDatabaseStartsEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	if err := os.WriteFile(dbPath, []byte("not a sqlite file"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	l := openTestLedger(t, dbPath)
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want empty ledger after corruption", l.Len())
	}
	// The rebuilt database must be usable.
	if added, err := l.Insert(context.Background(), testEntry(1, 100, "AA1")); !added || err != nil {
		t.Fatalf("Insert after rebuild = (%v, %v)", added, err)
	}
}

func TestClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	l := openTestLedger(t, dbPath)
	l.Insert(ctx, testEntry(1, 100, "AA1"))
	l.Insert(ctx, testEntry(2, 200, "BB2"))
	if err := l.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
	if _, ok := l.Selected(); ok {
		t.Error("selection must clear with the ledger")
	}
	l.Close()

	if reopened := openTestLedger(t, dbPath); reopened.Len() != 0 {
		t.Fatalf("clear must persist, got %d lines after reopen", reopened.Len())
	}
}

func TestGrouped(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	l.Insert(ctx, testEntry(1, 100, "AA1"))
	l.Insert(ctx, testEntry(2, 200, "BB2"))
	l.Insert(ctx, testEntry(3, 100, "CC3"))

	groups := l.Grouped()
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if len(groups[100]) != 2 || len(groups[200]) != 1 {
		t.Errorf("group sizes = (%d, %d), want (2, 1)", len(groups[100]), len(groups[200]))
	}
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	if total != l.Len() {
		t.Errorf("grouped total = %d, want every line in exactly one group", total)
	}
}

func TestSelect(t *testing.T) {
	l := openTestLedger(t, filepath.Join(t.TempDir(), "ledger.db"))
	ctx := context.Background()

	l.Insert(ctx, testEntry(1, 100, "AA1"))
	l.Insert(ctx, testEntry(2, 100, "BB2"))

	if !l.Select(1) {
		t.Fatal("Select(1) should succeed")
	}
	if selected, _ := l.Selected(); selected.ID != 1 {
		t.Errorf("Selected = %d, want 1", selected.ID)
	}
	if l.Select(99) {
		t.Error("Select of an absent id must fail")
	}
	if selected, _ := l.Selected(); selected.ID != 1 {
		t.Error("failed Select must not change the selection")
	}
}
