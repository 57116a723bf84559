// File: internal/jobs/locals_index.go
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"torslanda_locals_backend/internal/local"
	"torslanda_locals_backend/internal/platform/elasticsearch"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultBatchSize = 500

var ErrIndexingDisabled = errors.New("search indexing is disabled (ELASTICSEARCH_URL not set)")

// Indexer is the part of the search client the job needs.
type Indexer interface {
	EnsureIndex(ctx context.Context) error
	IndexDocuments(ctx context.Context, docs []elasticsearch.Document) (int, error)
}

// SyncReport summarizes one sync run.
type SyncReport struct {
	Batches int
	Indexed int
}

// LocalsIndexJob copies the locals table into the search index.
type LocalsIndexJob struct {
	repo          local.Repository
	indexer       Indexer
	schedule      string
	batchSize     int
	logger        *zap.Logger
	cronScheduler *cron.Cron
}

// NewLocalsIndexJob creates the job. A nil indexer leaves it disabled.
func NewLocalsIndexJob(repo local.Repository, indexer Indexer, schedule string, batchSize int, logger *zap.Logger) *LocalsIndexJob {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &LocalsIndexJob{
		repo:          repo,
		indexer:       indexer,
		schedule:      schedule,
		batchSize:     batchSize,
		logger:        logger.Named("LocalsIndexJob"),
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *LocalsIndexJob) SetupAndStart() error {
	if j.indexer == nil {
		j.logger.Info("Search indexing disabled, locals index job will not run.")
		return nil
	}
	if j.schedule == "" {
		j.logger.Warn("Locals index job schedule not defined (LOCALS_INDEX_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(j.schedule, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule locals index job", zap.String("spec", j.schedule), zap.Error(err))
		return err
	}
	j.logger.Info("Locals index job scheduled", zap.String("spec", j.schedule), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *LocalsIndexJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := j.Sync(ctx)
	if err != nil {
		j.logger.Error("Locals index job run failed", zap.Error(err))
		return
	}
	j.logger.Info("Locals index job run completed", zap.Int("batches", report.Batches), zap.Int("indexed", report.Indexed))
}

// Sync indexes every local, one batch at a time.
func (j *LocalsIndexJob) Sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport
	if j.indexer == nil {
		return report, ErrIndexingDisabled
	}
	if err := j.indexer.EnsureIndex(ctx); err != nil {
		return report, fmt.Errorf("ensure locals index: %w", err)
	}

	for offset := 0; ; offset += j.batchSize {
		batch, err := j.repo.FindBatch(ctx, offset, j.batchSize)
		if err != nil {
			return report, fmt.Errorf("load locals batch at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		docs := make([]elasticsearch.Document, 0, len(batch))
		for i := range batch {
			body, err := local.ToSearchDocument(&batch[i])
			if err != nil {
				j.logger.Warn("Skipping local that could not be converted", zap.String("id", batch[i].ID.String()), zap.Error(err))
				continue
			}
			docs = append(docs, elasticsearch.Document{ID: batch[i].ID.String(), Body: body})
		}

		n, err := j.indexer.IndexDocuments(ctx, docs)
		report.Batches++
		report.Indexed += n
		if err != nil {
			return report, fmt.Errorf("index locals batch at offset %d: %w", offset, err)
		}
		if len(batch) < j.batchSize {
			break
		}
	}
	return report, nil
}

// Stop gracefully stops the cron scheduler.
func (j *LocalsIndexJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Locals index job scheduler stopped.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Locals index job scheduler stop timed out.")
	}
}

// --- Cron Logger Adapter ---

type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger adapts zap.Logger to cron.Logger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Debug(msg, cl.fields(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	cl.zl.Error(msg, append(cl.fields(keysAndValues...), zap.Error(err))...)
}

func (cl *cronLogger) fields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(key, keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(key, "MISSING_VALUE"))
		}
	}
	return fields
}
