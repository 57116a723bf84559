// File: cmd/server/providers.go
package main

import (
	"log"

	"torslanda_locals_backend/internal/app"
	"torslanda_locals_backend/internal/blobstore"
	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/jobs"
	"torslanda_locals_backend/internal/local"
	"torslanda_locals_backend/internal/platform/database"
	"torslanda_locals_backend/internal/platform/elasticsearch"
	"torslanda_locals_backend/internal/platform/logger"
	"torslanda_locals_backend/internal/platform/metrics"
	"torslanda_locals_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cliOptions carries per-command settings that do not live in the environment.
type cliOptions struct {
	BatchSize int
	ESRefresh string
}

// application is everything the subcommands need from the object graph.
type application struct {
	Config   *config.Config
	Logger   *zap.Logger
	Server   *app.Server
	Locals   *local.ServiceImplementation
	Blobs    blobstore.Store
	IndexJob *jobs.LocalsIndexJob
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, func() {
		// Sync fails on stdout/stderr for some platforms; nothing to do about it.
		if err := l.Sync(); err != nil {
			log.Printf("logger sync: %v", err)
		}
	}, nil
}

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { database.CloseGORMDB(db, logger) }

	if cfg.DBAutoMigrate {
		if err := database.Migrate(cfg, db, logger, &user.User{}, &local.Local{}); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

func provideLocalService(repo local.Repository, blobs blobstore.Store, m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) *local.ServiceImplementation {
	return local.NewService(repo, blobs, m, cfg.SeedConcurrency, logger)
}

func provideLocalHandler(svc local.Service, cfg *config.Config, logger *zap.Logger) *local.Handler {
	return local.NewHandler(svc, cfg.MaxUploadBytes(), logger)
}

// provideSearchClient never fails the graph: an unreachable cluster only disables indexing.
func provideSearchClient(cfg *config.Config, logger *zap.Logger) *elasticsearch.ESClientWrapper {
	client, err := elasticsearch.NewClient(cfg, logger)
	if err != nil {
		logger.Warn("Search indexing disabled", zap.Error(err))
		return nil
	}
	return client
}

func provideIndexer(client *elasticsearch.ESClientWrapper, opts cliOptions, logger *zap.Logger) jobs.Indexer {
	ix := elasticsearch.NewLocalsIndexer(client, opts.ESRefresh, logger)
	if ix == nil {
		return nil
	}
	return ix
}

func provideLocalsIndexJob(repo local.Repository, indexer jobs.Indexer, cfg *config.Config, opts cliOptions, logger *zap.Logger) *jobs.LocalsIndexJob {
	return jobs.NewLocalsIndexJob(repo, indexer, cfg.LocalsIndexJobSchedule, opts.BatchSize, logger)
}
