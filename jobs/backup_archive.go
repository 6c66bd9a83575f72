package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/mos234/vegetable-orders/internal/backup"
	"github.com/mos234/vegetable-orders/internal/blob"
	jobmetrics "github.com/mos234/vegetable-orders/internal/jobs"
)

// BackupArchiveJob writes a full snapshot to the blob store.
type BackupArchiveJob struct {
	Backup  *backup.Service
	Blobs   blob.Store
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewBackupArchiveJob wires dependencies for the archive handler.
func NewBackupArchiveJob(svc *backup.Service, blobs blob.Store, logger *slog.Logger, metrics *jobmetrics.Metrics) *BackupArchiveJob {
	return &BackupArchiveJob{Backup: svc, Blobs: blobs, Logger: logger, Metrics: metrics}
}

// Handle processes TaskBackupArchive tasks.
func (j *BackupArchiveJob) Handle(ctx context.Context, _ *asynq.Task) (resultErr error) {
	if j == nil || j.Backup == nil || j.Blobs == nil {
		return errors.New("backup archive: handler not configured")
	}
	tracker := j.Metrics.Track(TaskBackupArchive)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	info, err := j.Backup.Archive(ctx, j.Blobs)
	if err != nil {
		j.logger().Error("archive backup", slog.Any("error", err))
		return err
	}
	j.Metrics.AddArchived("backup", info.Size)
	j.logger().Info("backup archived", slog.String("key", info.Key), slog.Int64("size", info.Size))
	return nil
}

func (j *BackupArchiveJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
