// Package ipc carries the JSON-RPC surface between the tagsight CLI and
// the tagsightd daemon over a Unix domain socket.
package ipc

import (
	"tagsight/internal/daemon"
	"tagsight/internal/ledger"
	"tagsight/internal/terminal"
)

// ScanRequest processes one task code synchronously.
type ScanRequest struct {
	TaskCode string `json:"task_code"`
}

// ScanResponse carries the scan outcome.
type ScanResponse struct {
	Result terminal.ScanResult `json:"result"`
}

// LedgerListRequest fetches the current scan ledger.
type LedgerListRequest struct{}

// LedgerListResponse contains ledger entries newest first.
type LedgerListResponse struct {
	Entries []ledger.Entry `json:"entries"`
}

// LedgerRemoveRequest drops one line from the ledger.
type LedgerRemoveRequest struct {
	LineID int64 `json:"line_id"`
}

// LedgerRemoveResponse reports whether the line existed.
type LedgerRemoveResponse struct {
	Removed bool `json:"removed"`
}

// LedgerClearRequest empties the ledger.
type LedgerClearRequest struct{}

// LedgerClearResponse reports how many lines were dropped.
type LedgerClearResponse struct {
	Removed int `json:"removed"`
}

// InventoryRequest pushes the ledger to inventory.
type InventoryRequest struct{}

// InventoryResponse summarizes the push.
type InventoryResponse struct {
	Result terminal.InventoryResult `json:"result"`
}

// ProbeRequest tests backend reachability.
type ProbeRequest struct{}

// ProbeResponse reports the probe outcome.
type ProbeResponse struct {
	Reachable bool   `json:"reachable"`
	Dialect   string `json:"dialect"`
}

// PrintTestRequest exercises the print integration.
type PrintTestRequest struct{}

// PrintTestResponse reports the print test outcome.
type PrintTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotifyTestRequest exercises the notification channel.
type NotifyTestRequest struct{}

// NotifyTestResponse reports the notification test outcome.
type NotifyTestResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// StartRequest starts scan processing.
type StartRequest struct{}

// StartResponse indicates whether the daemon started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops scan processing.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse is the daemon state snapshot.
type StatusResponse struct {
	Status daemon.Status `json:"status"`
}
