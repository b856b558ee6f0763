package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"posbridge-server/cmd/api/wire"
	"posbridge-server/cmd/config"
	"posbridge-server/internal/infra/async"
	"posbridge-server/internal/infra/httpserver"
	"posbridge-server/internal/infra/node"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	cfg := config.LoadConfig()
	slog.SetDefault(newLogger(cfg))

	slog.Info("posbridge is initializing",
		slog.String("environment", cfg.General.Environment),
		slog.Int("port", cfg.HTTP.Port))

	if err := run(cfg); err != nil {
		slog.Error("posbridge stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("good bye!!!")
}

func run(cfg config.AppConfig) error {
	telemetry, err := startTelemetry(context.Background(), telemetryOptions{
		ServiceName: "posbridge-server",
		Version:     node.Version,
	})
	if err != nil {
		return err
	}
	defer telemetry.shutdown()

	// health changes are mirrored here for the websocket hub
	broker := async.NewLocalBroker()
	defer broker.Stop()

	controlPlane, cleanup, err := wire.InitializeControlPlane(broker)
	if err != nil {
		return err
	}
	defer cleanup()

	server := httpserver.NewServer(httpserver.ServerOptions{
		Port:            cfg.HTTP.Port,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		ReadinessChecks: controlPlane.ReadinessChecks(),
	}, controlPlane.Controllers()...)
	go server.Run()

	ctx, cancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup
	for _, worker := range controlPlane.Workers() {
		workers.Add(1)
		go worker.Run(ctx, workers.Done)
	}

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	received := <-stop
	slog.Info("shutting down", slog.String("signal", received.String()))

	// stop taking requests before the queues and streams they feed go away
	server.Shutdown()
	controlPlane.Shutdown()
	cancel()
	workers.Wait()

	return nil
}

func newLogger(cfg config.AppConfig) *slog.Logger {
	level, ok := logLevels[cfg.General.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: shortSource}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, options)
	if cfg.IsLocal() {
		handler = slog.NewTextHandler(os.Stdout, options)
	}

	return slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("version", node.Version),
		slog.String("node_id", node.GetNodeInfo().ID),
	}))
}

func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	if source, ok := a.Value.Any().(*slog.Source); ok {
		source.File = filepath.Base(source.File)
	}
	return a
}
