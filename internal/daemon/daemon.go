package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"emblem/internal/config"
	"emblem/internal/icons"
	"emblem/internal/logging"
	"emblem/internal/notify"
)

// Daemon owns the privileged side of the icon pipeline: the durable store,
// the change hub, and single-instance enforcement. It has no image decoding
// capability; clients deliver finished asset sets over IPC.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *icons.Store
	hub    *notify.Hub

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// Status represents daemon runtime information.
type Status struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid"`
	SocketPath string `json:"socket_path"`
	DBPath     string `json:"db_path"`
	ApplyDir   string `json:"apply_dir"`
	IconCount  int    `json:"icon_count"`
	Active     string `json:"active"`
	Revision   int64  `json:"revision"`
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *icons.Store, hub *notify.Hub, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || hub == nil {
		return nil, errors.New("daemon requires config, store, and hub")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "emblemd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		hub:      hub,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the single-instance lock and seeds the hub with the current
// collection state so the first subscriber sees a snapshot immediately.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another emblemd instance is already running")
	}

	state, err := d.store.List(ctx)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("read initial state: %w", err)
	}
	d.hub.Publish(*state)

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.Int("pid", os.Getpid()),
		logging.Int("icons", len(state.Records)),
		logging.String("active", state.Active))
	return nil
}

// Stop releases the single-instance lock.
func (d *Daemon) Stop() {
	if !d.running.Swap(false) {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release lock failed", logging.Error(err))
	}
	d.logger.Info("daemon stopped")
}

// Running reports whether Start has been called without a matching Stop.
func (d *Daemon) Running() bool { return d.running.Load() }

// Store exposes the icon store to the IPC layer.
func (d *Daemon) Store() *icons.Store { return d.store }

// Hub exposes the change hub to the IPC layer.
func (d *Daemon) Hub() *notify.Hub { return d.hub }

// Config exposes the loaded configuration.
func (d *Daemon) Config() *config.Config { return d.cfg }

// Status assembles a runtime snapshot for CLI display.
func (d *Daemon) Status(ctx context.Context) (*Status, error) {
	state, err := d.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return &Status{
		Running:    d.running.Load(),
		PID:        os.Getpid(),
		SocketPath: d.cfg.Paths.SocketPath,
		DBPath:     d.store.Path(),
		ApplyDir:   d.cfg.Paths.ApplyDir,
		IconCount:  len(state.Records),
		Active:     state.Active,
		Revision:   state.Revision,
	}, nil
}
