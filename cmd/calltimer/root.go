package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/zgpcy/calltimer/internal/config"
	"github.com/zgpcy/calltimer/internal/demo"
	"github.com/zgpcy/calltimer/internal/logger"
	"github.com/zgpcy/calltimer/internal/report"
	"github.com/zgpcy/calltimer/internal/server"
	"github.com/zgpcy/calltimer/internal/timer"
	"github.com/zgpcy/calltimer/internal/tracing"
	"github.com/zgpcy/calltimer/internal/version"
)

const (
	// DefaultShutdownTimeout is the maximum time to wait for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "calltimer",
		Short: "Time function calls and report how long they took",
		Long: `calltimer runs the timed demo call sites (process_data, add_numbers) and
prints one "Finished '<name>' in <seconds> seconds" line per call.
Optionally the timings are also logged, exported as Prometheus metrics
and sent as OpenTelemetry spans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (optional)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return rootCmd
}

func run(ctx context.Context, configPath string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("calltimer starting",
		"version", version.Version,
		"config_path", configPath,
		"console_report", cfg.ConsoleEnabled(),
		"log_report", cfg.Report.Log,
		"metrics_enabled", cfg.Metrics.Enabled,
		"tracing_enabled", cfg.Tracing.Enabled)

	var reporters []report.Reporter
	if cfg.ConsoleEnabled() {
		reporters = append(reporters, report.NewConsole(stdout))
	}
	if cfg.Report.Log {
		reporters = append(reporters, report.NewLog(log.WithFields("component", "timer")))
	}

	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to flush spans", "error", err)
		}
	}()
	if tp.Enabled() {
		reporters = append(reporters, report.NewTrace(tp.Tracer()))
		log.Info("Span export enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	var srv *server.Server
	serverErrors := make(chan error, 1)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics := report.NewMetrics()
		if err := registry.Register(metrics); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		// Go runtime and process metrics
		if err := registry.Register(collectors.NewGoCollector()); err != nil {
			log.Warn("Failed to register Go collector", "error", err)
		}
		if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			log.Warn("Failed to register process collector", "error", err)
		}
		reporters = append(reporters, metrics)

		srv = server.NewServer(cfg, registry, log)
		go func() {
			serverErrors <- srv.Start()
		}()
	}

	runner := demo.NewRunner(stdout,
		time.Duration(*cfg.Demo.ProcessDataDelayMS)*time.Millisecond,
		time.Duration(*cfg.Demo.AddNumbersDelayMS)*time.Millisecond,
		timer.WithReporter(report.Multi(reporters...)))
	runner.Run()
	log.Debug("Demo calls finished")

	if srv == nil {
		return nil
	}

	// Keep serving metrics until interrupted
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("Context cancelled, shutting down")
	case sig := <-shutdown:
		log.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}
