package logging

const (
	// FieldComponent identifies the subsystem emitting the record.
	FieldComponent = "component"
	// FieldScanID correlates all records produced by one scan event.
	FieldScanID = "scan_id"
	// FieldTaskCode is the operator-entered or scanned task code.
	FieldTaskCode = "task_code"
	// FieldOrderID is the parent order identifier of a line.
	FieldOrderID = "order_id"
	// FieldLineID is the order-line identifier.
	FieldLineID = "line_id"
	// FieldDialect names the backend dialect in use (rest or index).
	FieldDialect = "dialect"
	// FieldEventType tags significant lifecycle events for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step when an operation degrades.
	FieldErrorHint = "error_hint"
	// FieldImpact describes what capability a degraded operation affects.
	FieldImpact = "impact"
)
