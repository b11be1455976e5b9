package terminal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tagsight/internal/config"
	"tagsight/internal/ledger"
	"tagsight/internal/orders"
	"tagsight/internal/search"
)

type fakeBackend struct {
	result       search.Result
	reachable    bool
	pushErr      error
	pushRejected map[int64]bool
	pushed       []int64
	pushedCodes  []string
}

func (f *fakeBackend) Search(ctx context.Context, taskCode string) search.Result {
	return f.result
}

func (f *fakeBackend) TestConnection(ctx context.Context) bool { return f.reachable }

func (f *fakeBackend) UpdateStatusCode(ctx context.Context, lineID int64, statusCode string) (bool, error) {
	f.pushed = append(f.pushed, lineID)
	f.pushedCodes = append(f.pushedCodes, statusCode)
	if f.pushErr != nil {
		return false, f.pushErr
	}
	return !f.pushRejected[lineID], nil
}

func (f *fakeBackend) Dialect() search.Dialect { return search.DialectREST }
func (f *fakeBackend) BaseURL() string         { return "http://backend.test" }

type fakePrinter struct {
	enabled bool
	fail    bool
	printed []string
}

func (f *fakePrinter) Enabled() bool { return f.enabled }

func (f *fakePrinter) PrintBarcode(ctx context.Context, barcode string, line orders.OrderLine) bool {
	f.printed = append(f.printed, barcode)
	return !f.fail
}

func (f *fakePrinter) TestConnection(ctx context.Context) (bool, string) {
	return f.enabled, "fake"
}

func validLine(id, orderID int64, code string) orders.OrderLine {
	return orders.OrderLine{
		ID:            id,
		OrderID:       orderID,
		TaskCodeFront: code,
		StatusCode:    orders.ValidStatusCode,
		Quantity:      1,
	}
}

func newTestTerminal(t *testing.T, backend Backend, printer Printer) *Terminal {
	t.Helper()
	scans, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"), nil)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = scans.Close() })
	return New(&config.Config{}, nil, scans, backend, printer, nil, nil)
}

func TestScanAddsEligibleLines(t *testing.T) {
	backend := &fakeBackend{result: search.Result{
		Lines:      []orders.OrderLine{validLine(11, 1, "AB1"), validLine(12, 1, "AB1")},
		TotalFound: 3,
		ValidCount: 2,
	}}
	printer := &fakePrinter{enabled: true}
	term := newTestTerminal(t, backend, printer)

	result := term.Scan(context.Background(), " AB1 ")
	if result.Outcome != OutcomeAdded {
		t.Fatalf("Outcome = %q, want added", result.Outcome)
	}
	if result.TotalFound != 3 || result.ValidCount != 2 {
		t.Errorf("counts = (%d, %d), want (3, 2)", result.TotalFound, result.ValidCount)
	}
	if result.Added != 2 || result.Duplicates != 0 {
		t.Errorf("added/duplicates = (%d, %d)", result.Added, result.Duplicates)
	}
	if result.ScanID == "" {
		t.Error("every scan must carry a scan id")
	}
	if term.Ledger().Len() != 2 {
		t.Errorf("ledger len = %d, want 2", term.Ledger().Len())
	}
	if result.Printed != 2 || len(printer.printed) != 2 {
		t.Errorf("printed = %d (%v), want both lines", result.Printed, printer.printed)
	}
	for _, entry := range result.Lines {
		if entry.ScanID != result.ScanID {
			t.Errorf("entry scan id = %q, want %q", entry.ScanID, result.ScanID)
		}
	}
}

func TestScanNotFound(t *testing.T) {
	term := newTestTerminal(t, &fakeBackend{}, nil)
	result := term.Scan(context.Background(), "ZZ9")
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("Outcome = %q, want not_found", result.Outcome)
	}
	if term.Ledger().Len() != 0 {
		t.Error("not-found scan must not touch the ledger")
	}
}

func TestScanIneligible(t *testing.T) {
	backend := &fakeBackend{result: search.Result{TotalFound: 2, ValidCount: 0}}
	term := newTestTerminal(t, backend, nil)
	result := term.Scan(context.Background(), "AB1")
	if result.Outcome != OutcomeIneligible {
		t.Fatalf("Outcome = %q, want ineligible", result.Outcome)
	}
	if result.TotalFound != 2 {
		t.Errorf("TotalFound = %d, want 2", result.TotalFound)
	}
	if term.Ledger().Len() != 0 {
		t.Error("ineligible scan must not touch the ledger")
	}
}

func TestScanDuplicate(t *testing.T) {
	backend := &fakeBackend{result: search.Result{
		Lines:      []orders.OrderLine{validLine(11, 1, "AB1")},
		TotalFound: 1,
		ValidCount: 1,
	}}
	term := newTestTerminal(t, backend, nil)

	if first := term.Scan(context.Background(), "AB1"); first.Outcome != OutcomeAdded {
		t.Fatalf("first scan = %q", first.Outcome)
	}
	second := term.Scan(context.Background(), "AB1")
	if second.Outcome != OutcomeDuplicate {
		t.Fatalf("second scan = %q, want duplicate", second.Outcome)
	}
	if second.Duplicates != 1 || second.Added != 0 {
		t.Errorf("duplicates/added = (%d, %d)", second.Duplicates, second.Added)
	}
	if term.Ledger().Len() != 1 {
		t.Errorf("ledger len = %d, want 1", term.Ledger().Len())
	}
}

func TestScanRejectsBlank(t *testing.T) {
	backend := &fakeBackend{}
	term := newTestTerminal(t, backend, nil)
	if result := term.Scan(context.Background(), "   "); result.Outcome != OutcomeRejected {
		t.Fatalf("Outcome = %q, want rejected", result.Outcome)
	}
}

func TestAddToInventory(t *testing.T) {
	backend := &fakeBackend{result: search.Result{
		Lines:      []orders.OrderLine{validLine(11, 100, "AB1"), validLine(12, 200, "AB2")},
		TotalFound: 2,
		ValidCount: 2,
	}}
	term := newTestTerminal(t, backend, nil)
	term.Scan(context.Background(), "AB1")

	result, err := term.AddToInventory(context.Background())
	if err != nil {
		t.Fatalf("AddToInventory: %v", err)
	}
	if result.Pushed != 2 || result.Failed != 0 || !result.Cleared {
		t.Fatalf("result = %+v", result)
	}
	if term.Ledger().Len() != 0 {
		t.Error("ledger must clear after a successful push")
	}
	// The status-code endpoint keys on the line-item id, not the parent
	// order id.
	if len(backend.pushed) != 2 || backend.pushed[0] != 11 || backend.pushed[1] != 12 {
		t.Errorf("pushed ids = %v, want line ids (11, 12)", backend.pushed)
	}
	for _, code := range backend.pushedCodes {
		if code != orders.InventoryStatusCode {
			t.Errorf("pushed status code = %q, want inventory token", code)
		}
	}
}

func TestAddToInventoryPartialFailureStillClears(t *testing.T) {
	backend := &fakeBackend{
		result: search.Result{
			Lines:      []orders.OrderLine{validLine(11, 100, "AB1"), validLine(12, 200, "AB2")},
			TotalFound: 2,
			ValidCount: 2,
		},
		pushRejected: map[int64]bool{12: true},
	}
	term := newTestTerminal(t, backend, nil)
	term.Scan(context.Background(), "AB1")

	result, err := term.AddToInventory(context.Background())
	if err != nil {
		t.Fatalf("AddToInventory: %v", err)
	}
	if result.Pushed != 1 || result.Failed != 1 || !result.Cleared {
		t.Fatalf("result = %+v", result)
	}
	if term.Ledger().Len() != 0 {
		t.Error("ledger clears when at least one line pushed")
	}
}

func TestAddToInventoryTotalFailureKeepsLedger(t *testing.T) {
	backend := &fakeBackend{
		result: search.Result{
			Lines:      []orders.OrderLine{validLine(11, 100, "AB1")},
			TotalFound: 1,
			ValidCount: 1,
		},
		pushErr: errors.New("backend down"),
	}
	term := newTestTerminal(t, backend, nil)
	term.Scan(context.Background(), "AB1")

	result, err := term.AddToInventory(context.Background())
	if err != nil {
		t.Fatalf("AddToInventory: %v", err)
	}
	if result.Pushed != 0 || result.Failed != 1 || result.Cleared {
		t.Fatalf("result = %+v", result)
	}
	if term.Ledger().Len() != 1 {
		t.Error("ledger must survive a fully failed push for retry")
	}
}

func TestAddToInventoryEmptyLedger(t *testing.T) {
	backend := &fakeBackend{}
	term := newTestTerminal(t, backend, nil)
	result, err := term.AddToInventory(context.Background())
	if err != nil {
		t.Fatalf("AddToInventory: %v", err)
	}
	if result.Pushed != 0 || result.Cleared {
		t.Fatalf("result = %+v, want no-op", result)
	}
	if len(backend.pushed) != 0 {
		t.Error("empty ledger must not call the backend")
	}
}

func TestStatus(t *testing.T) {
	backend := &fakeBackend{result: search.Result{
		Lines:      []orders.OrderLine{validLine(11, 100, "AB1"), validLine(12, 200, "AB2")},
		TotalFound: 2,
		ValidCount: 2,
	}, reachable: true}
	term := newTestTerminal(t, backend, &fakePrinter{enabled: true})
	term.Scan(context.Background(), "AB1")

	status := term.Status()
	if status.LedgerLines != 2 || status.LedgerOrders != 2 {
		t.Errorf("status = %+v", status)
	}
	if !status.PrinterEnabled {
		t.Error("printer should report enabled")
	}
	if status.Dialect != "rest" || status.BackendURL == "" {
		t.Errorf("backend fields = (%q, %q)", status.Dialect, status.BackendURL)
	}
	if !term.Probe(context.Background()) {
		t.Error("probe should pass through backend reachability")
	}
}
