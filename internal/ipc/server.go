package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"tagsight/internal/daemon"
	"tagsight/internal/logging"
)

// serviceName is the RPC receiver name on the wire.
const serviceName = "TagSight"

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName(serviceName, srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve accepts RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldErrorHint, "check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the socket file manually before the next start"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func (s *service) Scan(req ScanRequest, resp *ScanResponse) error {
	resp.Result = s.daemon.Terminal().Scan(s.ctx, req.TaskCode)
	s.log().Info("scan processed via IPC",
		logging.String(logging.FieldTaskCode, req.TaskCode),
		logging.String("outcome", string(resp.Result.Outcome)))
	return nil
}

func (s *service) LedgerList(_ LedgerListRequest, resp *LedgerListResponse) error {
	resp.Entries = s.daemon.Terminal().Ledger().Lines()
	return nil
}

func (s *service) LedgerRemove(req LedgerRemoveRequest, resp *LedgerRemoveResponse) error {
	if req.LineID <= 0 {
		return fmt.Errorf("invalid line id %d", req.LineID)
	}
	removed, err := s.daemon.Terminal().Remove(s.ctx, req.LineID)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) LedgerClear(_ LedgerClearRequest, resp *LedgerClearResponse) error {
	count := s.daemon.Terminal().Ledger().Len()
	if err := s.daemon.Terminal().Clear(s.ctx); err != nil {
		return err
	}
	resp.Removed = count
	s.log().Info("ledger cleared via IPC",
		logging.String(logging.FieldEventType, "ledger_clear"),
		logging.Int("removed", count))
	return nil
}

func (s *service) Inventory(_ InventoryRequest, resp *InventoryResponse) error {
	result, err := s.daemon.Terminal().AddToInventory(s.ctx)
	if err != nil {
		return err
	}
	resp.Result = result
	s.log().Info("inventory push via IPC",
		logging.String(logging.FieldEventType, "inventory_push"),
		logging.Int("pushed", result.Pushed),
		logging.Int("failed", result.Failed))
	return nil
}

func (s *service) Probe(_ ProbeRequest, resp *ProbeResponse) error {
	resp.Reachable = s.daemon.Terminal().Probe(s.ctx)
	resp.Dialect = s.daemon.Terminal().Status().Dialect
	return nil
}

func (s *service) PrintTest(_ PrintTestRequest, resp *PrintTestResponse) error {
	resp.Success, resp.Message = s.daemon.Terminal().TestPrinter(s.ctx)
	return nil
}

func (s *service) NotifyTest(_ NotifyTestRequest, resp *NotifyTestResponse) error {
	if err := s.daemon.Terminal().TestNotifications(s.ctx); err != nil {
		resp.Sent = false
		resp.Message = err.Error()
		return nil
	}
	resp.Sent = true
	resp.Message = "notification sent"
	return nil
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.daemon.Stop()
	resp.Stopped = true
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Status = s.daemon.Status()
	return nil
}
