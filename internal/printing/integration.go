package printing

import (
	"context"
	"log/slog"
	"time"

	"tagsight/internal/config"
	"tagsight/internal/logging"
	"tagsight/internal/orders"
)

// Transport method names accepted in configuration.
const (
	MethodNamedPipe = "named_pipe"
	MethodHTTP      = "http"
	MethodFile      = "file"
	MethodExcel     = "excel"
)

const pipeTimeout = 5 * time.Second

// Integration dispatches print jobs to the configured transport.
type Integration struct {
	cfg    config.Printer
	logger *slog.Logger
}

// New creates the print integration.
func New(cfg config.Printer, logger *slog.Logger) *Integration {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Integration{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "printing"),
	}
}

// Enabled reports whether the integration is configured to run.
func (i *Integration) Enabled() bool {
	return i.cfg.Enabled
}

// quantity returns the per-job label count.
func (i *Integration) quantity() int {
	if i.cfg.PrintQuantity > 0 {
		return i.cfg.PrintQuantity
	}
	return 1
}

func (i *Integration) template() string {
	if i.cfg.TemplateName != "" {
		return i.cfg.TemplateName
	}
	return "Default"
}

// PrintBarcode pushes one label job. The boolean reports whether the
// transport accepted the job; transport errors are logged and reported as
// a failed push rather than surfaced, since printing never blocks a scan.
func (i *Integration) PrintBarcode(ctx context.Context, barcode string, line orders.OrderLine) bool {
	if !i.cfg.Enabled {
		i.logger.DebugContext(ctx, "print integration disabled")
		return false
	}

	var (
		ok  bool
		err error
	)
	switch i.cfg.Method {
	case MethodNamedPipe:
		ok, err = i.printViaPipe(ctx, barcode, line)
	case MethodHTTP:
		ok, err = i.printViaHTTP(ctx, barcode, line)
	case MethodFile:
		ok, err = i.printViaFile(barcode, line)
	case MethodExcel:
		ok, err = i.exportToWorkbook(ctx, barcode, line)
	default:
		i.logger.ErrorContext(ctx, "unknown print method",
			logging.String("method", i.cfg.Method))
		return false
	}
	if err != nil {
		i.logger.WarnContext(ctx, "print push failed",
			logging.String("method", i.cfg.Method),
			logging.String("barcode", barcode),
			logging.Error(err))
		return false
	}
	if ok {
		i.logger.InfoContext(ctx, "label job pushed",
			logging.String("method", i.cfg.Method),
			logging.String("barcode", barcode))
	}
	return ok
}

// TestConnection pushes a throwaway job through the configured transport
// and reports the outcome with an operator-readable message.
func (i *Integration) TestConnection(ctx context.Context) (bool, string) {
	testLine := orders.OrderLine{TaskCodeFront: "TEST123", CustomerName: "connection test"}
	if i.PrintBarcode(ctx, "TEST123", testLine) {
		return true, "print integration test successful"
	}
	if !i.cfg.Enabled {
		return false, "print integration is disabled"
	}
	return false, "print integration test failed"
}
