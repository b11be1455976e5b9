// Package notifications pushes scan-floor events to operators via ntfy.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tagsight/internal/config"
)

const userAgent = "TagSight/1.0"

// Service defines the notification surface exposed to the scan workflow.
type Service interface {
	NotifyScanMatched(ctx context.Context, taskCode string, lineCount int) error
	NotifyScanNotFound(ctx context.Context, taskCode string) error
	NotifyScanIneligible(ctx context.Context, taskCode string, totalFound int) error
	NotifyDuplicateScan(ctx context.Context, taskCode string) error
	NotifyInventoryPushed(ctx context.Context, pushed, failed int) error
	NotifyScannerAttached(ctx context.Context, device string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg config.Notifications) Service {
	topic := strings.TrimSpace(cfg.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyScanMatched(ctx context.Context, taskCode string, lineCount int) error {
	data := payload{
		title:   "TagSight - Scan Matched",
		message: fmt.Sprintf("Scan %s matched %d line(s)", strings.TrimSpace(taskCode), lineCount),
		tags:    []string{"tagsight", "scan", "matched"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanNotFound(ctx context.Context, taskCode string) error {
	data := payload{
		title:   "TagSight - No Match",
		message: fmt.Sprintf("No orders found for %s", strings.TrimSpace(taskCode)),
		tags:    []string{"tagsight", "scan", "notfound"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScanIneligible(ctx context.Context, taskCode string, totalFound int) error {
	data := payload{
		title: "TagSight - Not Ready",
		message: fmt.Sprintf("Scan %s matched %d order(s) but none are ready for production",
			strings.TrimSpace(taskCode), totalFound),
		tags:     []string{"tagsight", "scan", "ineligible"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyDuplicateScan(ctx context.Context, taskCode string) error {
	data := payload{
		title:   "TagSight - Duplicate",
		message: fmt.Sprintf("Scan %s is already on the ledger", strings.TrimSpace(taskCode)),
		tags:    []string{"tagsight", "scan", "duplicate"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyInventoryPushed(ctx context.Context, pushed, failed int) error {
	var (
		title   string
		message string
	)
	if failed == 0 {
		title = "TagSight - Inventory Updated"
		message = fmt.Sprintf("Pushed %d line(s) to inventory", pushed)
	} else {
		title = "TagSight - Inventory Updated (with errors)"
		message = fmt.Sprintf("Pushed %d line(s) to inventory, %d failed", pushed, failed)
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"tagsight", "inventory", "pushed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyScannerAttached(ctx context.Context, device string) error {
	data := payload{
		title:   "TagSight - Scanner Connected",
		message: fmt.Sprintf("Barcode scanner attached: %s", strings.TrimSpace(device)),
		tags:    []string{"tagsight", "scanner", "attached"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "TagSight - Error",
		message:  builder.String(),
		tags:     []string{"tagsight", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "TagSight - Test",
		message:  "Notification system test",
		tags:     []string{"tagsight", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanMatched(context.Context, string, int) error    { return nil }
func (noopService) NotifyScanNotFound(context.Context, string) error        { return nil }
func (noopService) NotifyScanIneligible(context.Context, string, int) error { return nil }
func (noopService) NotifyDuplicateScan(context.Context, string) error       { return nil }
func (noopService) NotifyInventoryPushed(context.Context, int, int) error   { return nil }
func (noopService) NotifyScannerAttached(context.Context, string) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error        { return nil }
func (noopService) TestNotification(context.Context) error                  { return nil }
