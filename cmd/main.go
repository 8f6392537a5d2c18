package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	gofeat "github.com/featlab/gofeat"
	"github.com/featlab/gofeat/exitcodes"
	"github.com/featlab/gofeat/flags"
	"github.com/featlab/gofeat/service"
	"github.com/featlab/gofeat/steps"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "gofeat"
	app.Usage = "Feature Test Runner Service"
	app.Description = "gofeat runs Gherkin feature suites and materializes their reports"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if gofeat.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else {
				// Test failures and unspecified errors exit with code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Start telemetry
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}
	defer shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(ctx.String(flags.LogLevel.Name))
	log.SetDefault(logger)

	cfg, err := gofeat.NewConfig(ctx, logger)
	if err != nil {
		return gofeat.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	cfg.Log.Debug("Config",
		"featureDir", cfg.FeatureDir,
		"tags", cfg.Tags,
		"reportDir", cfg.ReportDir,
		"concurrency", cfg.Concurrency)

	svc := service.New(cfg.ReportDir)
	svc.Start(ctx.Context)
	defer svc.Shutdown()

	appCtx, cancel := context.WithCancelCause(ctx.Context)
	defer cancel(nil)

	app, err := gofeat.New(appCtx, cfg, steps.DefaultRegistry(), func(err error) {
		cancel(err)
	})
	if err != nil {
		return gofeat.NewRuntimeError(fmt.Errorf("failed to create app: %w", err))
	}

	if err := app.Start(appCtx); err != nil {
		return err
	}
	if cfg.RunOnce {
		return nil
	}

	<-appCtx.Done()
	return app.Stop(context.Background())
}

func newLogger(level string) log.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
}
