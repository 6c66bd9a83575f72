package app

import (
	"github.com/hibiken/asynq"

	jobmetrics "github.com/mos234/vegetable-orders/internal/jobs"
	"github.com/mos234/vegetable-orders/jobs"
)

// RedisOpts returns the asynq connection options for the job queue.
func (c *Config) RedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: c.RedisAddr}
}

// NewWorker builds the asynq worker with both task handlers and the cron
// schedule from BACKUP_CRON and REPORT_CRON.
func (c *Container) NewWorker() (*jobs.Worker, error) {
	metrics := jobmetrics.NewMetrics(c.Metrics.Registerer())
	archive := jobs.NewBackupArchiveJob(c.Backup, c.Blobs, c.Logger, metrics)
	monthly := jobs.NewMonthlyReportJob(c.Orders, c.Blobs, c.Labels, c.Logger, metrics)

	reportTask, err := jobs.NewMonthlyReportTask(jobs.MonthlyReportPayload{})
	if err != nil {
		return nil, err
	}
	return jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   c.Config.RedisOpts(),
		Logger:      c.Logger,
		Concurrency: c.Config.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskBackupArchive, Handler: archive.Handle},
			{Type: jobs.TaskMonthlyReport, Handler: monthly.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: c.Config.BackupCron, Task: jobs.NewBackupArchiveTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: c.Config.ReportCron, Task: reportTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
}
