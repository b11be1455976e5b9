package scanner

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"tagsight/internal/config"
	"tagsight/internal/logging"
)

// HotplugMonitor watches udev netlink events for the barcode scanner
// attaching or detaching, so the terminal can tell an operator why input
// went silent.
type HotplugMonitor struct {
	cfg     config.Scanner
	logger  *slog.Logger
	handler func(ctx context.Context, device string, attached bool)

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewHotplugMonitor creates a monitor. handler is invoked for every
// matched attach/detach event.
func NewHotplugMonitor(cfg config.Scanner, logger *slog.Logger, handler func(ctx context.Context, device string, attached bool)) *HotplugMonitor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HotplugMonitor{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "scanner-monitor"),
		handler: handler,
	}
}

// Start begins listening for udev netlink events. A failed netlink
// connect degrades to no hotplug awareness rather than failing the
// daemon.
func (m *HotplugMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; scanner hotplug tracking unavailable",
			logging.Error(err),
			logging.String(logging.FieldEventType, "netlink_connect_failed"),
			logging.String(logging.FieldErrorHint, "ensure the daemon has permission to access netlink sockets"),
			logging.String(logging.FieldImpact, "scanner attach/detach events will not be reported"),
		)
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("scanner hotplug monitor started",
		logging.String(logging.FieldEventType, "hotplug_monitor_started"),
		logging.String("vendor_match", m.cfg.VendorMatch),
	)
	return nil
}

// Stop shuts down the monitor.
func (m *HotplugMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("scanner hotplug monitor stopped",
		logging.String(logging.FieldEventType, "hotplug_monitor_stopped"))
}

// Running reports whether the monitor is active.
func (m *HotplugMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *HotplugMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			m.logger.Warn("scanner hotplug monitor error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "hotplug_monitor_error"))
		}
	}
}

// buildMatcher matches add/remove events on the input subsystem; barcode
// scanners enumerate as HID keyboards.
func (m *HotplugMonitor) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "input",
		},
	})
	return rules
}

func (m *HotplugMonitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	device := deviceLabel(uevent)
	if device == "" {
		return
	}
	if !m.matchesVendor(uevent) {
		m.logger.Debug("ignoring input event for non-matching vendor",
			logging.String("device", device))
		return
	}

	attached := uevent.Action == netlink.ADD
	m.logger.Info("scanner hotplug event",
		logging.String(logging.FieldEventType, "scanner_hotplug"),
		logging.String("device", device),
		logging.Bool("attached", attached),
	)
	if m.handler != nil {
		m.handler(ctx, device, attached)
	}
}

// matchesVendor applies the configured vendor filter against the udev
// environment. An empty filter matches every input device.
func (m *HotplugMonitor) matchesVendor(uevent netlink.UEvent) bool {
	match := strings.TrimSpace(m.cfg.VendorMatch)
	if match == "" {
		return true
	}
	match = strings.ToLower(match)
	for _, key := range []string{"ID_VENDOR", "ID_VENDOR_ID", "NAME", "PRODUCT"} {
		if value := strings.ToLower(uevent.Env[key]); value != "" && strings.Contains(value, match) {
			return true
		}
	}
	return false
}

// deviceLabel derives a readable device identifier from a uevent.
func deviceLabel(uevent netlink.UEvent) string {
	if name := strings.Trim(uevent.Env["NAME"], `"`); name != "" {
		return name
	}
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return parts[len(parts)-1]
}
