// Command emblemd is the privileged daemon: it owns the icon database,
// applies the active icon, and serves the IPC surface the CLI talks to.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"emblem/internal/apply"
	"emblem/internal/config"
	"emblem/internal/daemon"
	"emblem/internal/icons"
	"emblem/internal/ipc"
	"emblem/internal/logging"
	"emblem/internal/notify"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := icons.Open(cfg)
	if err != nil {
		logger.Error("open icon store", logging.Error(err))
		return
	}
	defer store.Close()

	hub := notify.NewHub()
	store.SetLogger(logger)
	store.SetNotifier(hub)
	store.SetApplier(apply.NewFileApplier(cfg, logger))

	d, err := daemon.New(cfg, store, hub, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", logging.Error(err))
		return
	}
	defer d.Stop()

	ipcServer, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	<-ctx.Done()
	logger.Info("emblemd shutting down")
}
