package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tagsight/internal/orders"
)

// job is the wire payload shared by the pipe, HTTP, and file transports.
type job struct {
	Timestamp string  `json:"timestamp,omitempty"`
	Template  string  `json:"template"`
	Data      jobData `json:"data"`
	Quantity  int     `json:"quantity"`
}

type jobData struct {
	Barcode   string           `json:"barcode"`
	OrderInfo orders.OrderLine `json:"orderInfo"`
}

func (i *Integration) newJob(barcode string, line orders.OrderLine) job {
	return job{
		Template: i.template(),
		Data:     jobData{Barcode: barcode, OrderInfo: line},
		Quantity: i.quantity(),
	}
}

// printViaPipe writes the job to the print engine's listening socket and
// waits for an acknowledgement. The engine answers with a free-form line;
// anything mentioning success counts.
func (i *Integration) printViaPipe(ctx context.Context, barcode string, line orders.OrderLine) (bool, error) {
	if i.cfg.PipePath == "" {
		return false, fmt.Errorf("pipe path not configured")
	}
	conn, err := net.DialTimeout("unix", i.cfg.PipePath, pipeTimeout)
	if err != nil {
		return false, fmt.Errorf("dial print pipe: %w", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(pipeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false, fmt.Errorf("set pipe deadline: %w", err)
	}

	payload, err := json.Marshal(i.newJob(barcode, line))
	if err != nil {
		return false, fmt.Errorf("encode print job: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return false, fmt.Errorf("write print job: %w", err)
	}

	buf := make([]byte, 512)
	n, err := conn.Read(buf)
	if err != nil {
		return false, fmt.Errorf("read pipe response: %w", err)
	}
	return strings.Contains(string(buf[:n]), "success"), nil
}

// printViaHTTP posts the job to the HTTP print bridge.
func (i *Integration) printViaHTTP(ctx context.Context, barcode string, line orders.OrderLine) (bool, error) {
	url := i.cfg.HTTPURL
	if url == "" {
		url = "http://localhost:8080/print"
	}
	payload, err := json.Marshal(i.newJob(barcode, line))
	if err != nil {
		return false, fmt.Errorf("encode print job: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("build print request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: pipeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("post print job: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// printViaFile appends the job to a JSON queue file a downstream watcher
// drains.
func (i *Integration) printViaFile(barcode string, line orders.OrderLine) (bool, error) {
	queuePath := i.cfg.QueuePath
	if queuePath == "" {
		queuePath = "print_queue.json"
	}
	if err := os.MkdirAll(filepath.Dir(queuePath), 0o755); err != nil {
		return false, fmt.Errorf("create queue directory: %w", err)
	}

	var queue []job
	if data, err := os.ReadFile(queuePath); err == nil {
		// A queue file that no longer parses is replaced rather than
		// blocking further prints.
		_ = json.Unmarshal(data, &queue)
	}

	entry := i.newJob(barcode, line)
	entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	queue = append(queue, entry)

	encoded, err := json.MarshalIndent(queue, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode print queue: %w", err)
	}
	if err := os.WriteFile(queuePath, encoded, 0o644); err != nil {
		return false, fmt.Errorf("write print queue: %w", err)
	}
	return true, nil
}
