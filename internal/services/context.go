package services

import "context"

type contextKey string

const (
	scanIDKey   contextKey = "scan_id"
	taskCodeKey contextKey = "task_code"
)

// WithScanID annotates context with the scan correlation identifier.
func WithScanID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, scanIDKey, id)
}

// ScanIDFromContext extracts the scan correlation identifier if present.
func ScanIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(scanIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTaskCode annotates context with the task code being processed.
func WithTaskCode(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, taskCodeKey, code)
}

// TaskCodeFromContext extracts the task code if present.
func TaskCodeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(taskCodeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
