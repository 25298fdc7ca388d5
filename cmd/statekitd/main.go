// Command statekitd maintains a composite state tree over NATS: it bridges
// the declared children's state change topics into one composite and
// republishes an aggregate notification per child change, exposing
// Prometheus metrics over HTTP.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c360/statekit/component"
	"github.com/c360/statekit/composer"
	"github.com/c360/statekit/config"
	"github.com/c360/statekit/messenger"
	"github.com/c360/statekit/metric"
	"github.com/c360/statekit/natsclient"
)

func main() {
	if err := run(); err != nil {
		slog.Error("statekitd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to JSON configuration file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	clientOpts := []natsclient.ClientOption{
		natsclient.WithName(cfg.NATS.Name),
		natsclient.WithTimeout(cfg.NATS.Timeout()),
		natsclient.WithLogger(logger),
	}
	if cfg.NATS.Username != "" {
		clientOpts = append(clientOpts, natsclient.WithCredentials(cfg.NATS.Username, cfg.NATS.Password))
	}
	if cfg.NATS.Token != "" {
		clientOpts = append(clientOpts, natsclient.WithToken(cfg.NATS.Token))
	}

	client, err := natsclient.NewClient(cfg.NATS.URL, clientOpts...)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Connect(); err != nil {
		return err
	}

	bus, err := messenger.NewNATS(client, messenger.WithLogger(logger))
	if err != nil {
		return err
	}

	registry := metric.NewRegistry()

	children := make([]component.Child, 0, len(cfg.Composer.Children))
	for _, cc := range cfg.Composer.Children {
		// Daemon children start without a snapshot; their slice appears
		// on their first notification.
		children = append(children, component.Modern(cc.Name, nil, cc.Metadata))
	}

	comp, err := composer.New(bus, children,
		composer.WithName(cfg.Composer.Name),
		composer.WithLogger(logger),
		composer.WithMetrics(registry.Composer),
	)
	if err != nil {
		return err
	}

	logger.Info("composite started",
		"composer", comp.Name(),
		"children", len(children),
		"nats", cfg.NATS.URL,
	)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, registry.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", "addr", cfg.Metrics.Addr, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}

	if err := client.Drain(); err != nil {
		logger.Error("NATS drain failed", "error", err)
	}

	return nil
}
