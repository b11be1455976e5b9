// Package terminal implements the scanning workflow: a scanned task code
// is looked up against the backend, normalized lines are vetted and
// recorded on the ledger, labels are pushed to the print integration, and
// completed batches move to inventory. All state the workflow touches
// hangs off one Terminal value; nothing here is global.
package terminal
