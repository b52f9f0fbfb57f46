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
	"time"

	"emblem/internal/daemon"
	"emblem/internal/logging"
)

const (
	defaultWatchWait = 25 * time.Second
	maxWatchWait     = 55 * time.Second
)

// Server exposes the icon pipeline via JSON-RPC over a Unix domain socket.
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
	srv := &service{daemon: d, logger: logging.NewComponentLogger(logger, "ipc"), ctx: ctx}
	if err := rpcServer.RegisterName("Emblem", srv); err != nil {
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

// Serve starts accepting RPC connections until the context is canceled.
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
				s.logger.Warn("accept failed", logging.Error(err))
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
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

// domainFailure extracts the message and classification from a store or
// validation error. Domain rejections travel inside the response body so the
// RPC layer's own errors stay reserved for transport faults.
func domainFailure(err error) (string, string) {
	kind := "internal"
	var classifier interface{ ErrorKind() string }
	if errors.As(err, &classifier) {
		kind = classifier.ErrorKind()
	}
	return err.Error(), kind
}

func (s *service) SaveIcon(req SaveIconRequest, resp *SaveIconResponse) error {
	record, err := s.daemon.Store().Add(s.ctx, req.Assets, req.Name)
	if err != nil {
		resp.Error, resp.ErrorKind = domainFailure(err)
		s.logger.Warn("save icon rejected",
			logging.String("name", req.Name),
			logging.String("kind", resp.ErrorKind),
			logging.Error(err))
		return nil
	}
	resp.OK = true
	resp.Record = record
	return nil
}

func (s *service) SwitchIcon(req SwitchIconRequest, resp *SwitchIconResponse) error {
	if err := s.daemon.Store().SetActive(s.ctx, req.Selector); err != nil {
		resp.Error, resp.ErrorKind = domainFailure(err)
		s.logger.Warn("switch icon rejected",
			logging.String("selector", req.Selector),
			logging.String("kind", resp.ErrorKind),
			logging.Error(err))
		return nil
	}
	resp.OK = true
	return nil
}

func (s *service) DeleteIcon(req DeleteIconRequest, resp *DeleteIconResponse) error {
	if err := s.daemon.Store().Remove(s.ctx, req.ID); err != nil {
		resp.Error, resp.ErrorKind = domainFailure(err)
		s.logger.Warn("delete icon rejected",
			logging.String("id", req.ID),
			logging.String("kind", resp.ErrorKind),
			logging.Error(err))
		return nil
	}
	resp.OK = true
	return nil
}

func (s *service) State(_ StateRequest, resp *StateResponse) error {
	state, err := s.daemon.Store().List(s.ctx)
	if err != nil {
		return err
	}
	resp.State = *state
	return nil
}

func (s *service) Watch(req WatchRequest, resp *WatchResponse) error {
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait <= 0 {
		wait = defaultWatchWait
	}
	if wait > maxWatchWait {
		wait = maxWatchWait
	}

	state, changed := s.daemon.Hub().Wait(s.ctx, req.SinceRevision, wait)
	resp.Changed = changed
	resp.State = state
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status, err := s.daemon.Status(s.ctx)
	if err != nil {
		return err
	}
	resp.Status = *status
	return nil
}
