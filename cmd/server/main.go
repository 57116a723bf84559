// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log" // Standard log for messages before zap is active
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/jobs"
	"torslanda_locals_backend/internal/local"

	"go.uber.org/zap"
)

const usage = `usage: server [command]

commands:
  serve             run the HTTP API (default)
  populate-locals   replace all locals with the seed dataset
  sync-locals       copy all locals into the search index
      -batch-size N     locals per bulk request (default 500)
      -es-refresh P     refresh policy: true, false or wait_for (default false)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(args []string) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	opts := cliOptions{BatchSize: jobs.DefaultBatchSize, ESRefresh: "false"}
	switch command {
	case "serve":
		return withApp(opts, serve)
	case "populate-locals":
		return withApp(opts, func(ctx context.Context, a *application) error {
			return populateLocals(ctx, a)
		})
	case "sync-locals":
		fs := flag.NewFlagSet("sync-locals", flag.ContinueOnError)
		fs.IntVar(&opts.BatchSize, "batch-size", jobs.DefaultBatchSize, "locals per bulk request")
		fs.StringVar(&opts.ESRefresh, "es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return withApp(opts, syncLocals)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// withApp loads config, builds the object graph and runs fn until it returns or a signal arrives.
func withApp(opts cliOptions, fn func(ctx context.Context, a *application) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a, cleanup, err := initializeApp(cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return fn(ctx, a)
}

func serve(ctx context.Context, a *application) error {
	if a.Config.ResetDatabase {
		if err := populateLocals(ctx, a); err != nil {
			a.Logger.Error("Populating locals at startup failed", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	a.Logger.Info("Received shutdown signal, shutting down server...")

	timeout := a.Config.ServerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.Logger.Info("Server shutdown complete.")
	return nil
}

func populateLocals(ctx context.Context, a *application) error {
	seeds, err := local.LoadSeedFile(a.Config.SeedDataPath)
	if err != nil {
		return err
	}
	a.Logger.Info("Populating locals from seed file",
		zap.String("path", a.Config.SeedDataPath),
		zap.Int("records", len(seeds)),
	)
	report, err := a.Locals.PopulateFromSeed(ctx, seeds, local.NewLogoUploader(a.Blobs, a.Config.SeedLogosDir))
	if err != nil {
		return err
	}
	a.Logger.Info("Locals populated",
		zap.Int("total", report.Total),
		zap.Int("inserted", report.Inserted),
		zap.Int("failed", report.Failed),
	)
	return nil
}

func syncLocals(ctx context.Context, a *application) error {
	report, err := a.IndexJob.Sync(ctx)
	if errors.Is(err, jobs.ErrIndexingDisabled) {
		return err
	}
	a.Logger.Info("Locals sync finished", zap.Int("batches", report.Batches), zap.Int("indexed", report.Indexed))
	return err
}
