// Command tagsightd is the scanning-terminal daemon. It owns the scan
// ledger, the backend client, and the print integration, and serves the
// tagsight CLI over a Unix socket.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"tagsight/internal/config"
	"tagsight/internal/daemon"
	"tagsight/internal/images"
	"tagsight/internal/ipc"
	"tagsight/internal/ledger"
	"tagsight/internal/logging"
	"tagsight/internal/notifications"
	"tagsight/internal/printing"
	"tagsight/internal/search"
	"tagsight/internal/terminal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr", cfg.LogPath()},
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	scans, err := ledger.Open(cfg.LedgerDBPath(), logger)
	if err != nil {
		logger.Error("open scan ledger", logging.Error(err))
		return
	}
	defer scans.Close()

	var backend terminal.Backend
	client, err := search.New(cfg.API.BaseURL, cfg.API.APIKey,
		search.WithTimeout(cfg.APITimeout()),
		search.WithBasicAuth(cfg.API.Username, cfg.API.Password),
		search.WithLogger(logger),
	)
	if err != nil {
		logger.Warn("backend not configured, scans will not resolve",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run 'tagsight config setup' to point at an order backend"))
		backend = search.Unconfigured()
	} else {
		backend = client
	}

	notifier := notifications.NewService(cfg.Notifications)
	printer := printing.New(cfg.Printer, logger)
	artwork := images.New(cfg.Images, logger)

	term := terminal.New(cfg, logger, scans, backend, printer, artwork, notifier)

	d, err := daemon.New(cfg, logger, term, notifier)
	if err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			logger.Error("another tagsightd instance holds the lock",
				logging.String("lock", cfg.LockPath()))
			return
		}
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Warn("daemon start", logging.Error(err))
	}

	<-ctx.Done()
	logger.Info("tagsightd shutting down")
}
