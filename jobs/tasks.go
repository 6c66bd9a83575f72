package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBackupArchive exports a snapshot and stores it in the blob store.
	TaskBackupArchive = "backup:archive"
	// TaskMonthlyReport renders a monthly workbook into the blob store.
	TaskMonthlyReport = "report:monthly"

	// ReportPrefix is the blob key prefix for generated workbooks.
	ReportPrefix = "reports/"
)

// MonthlyReportPayload selects the reported month. Zero values mean the
// month before the one the job runs in.
type MonthlyReportPayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Period resolves the payload against now.
func (p MonthlyReportPayload) Period(now time.Time) (time.Month, int, error) {
	if p.Month == 0 && p.Year == 0 {
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return prev.Month(), prev.Year(), nil
	}
	if p.Month < 1 || p.Month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d", p.Month)
	}
	if p.Year < 1 || p.Year > 9999 {
		return 0, 0, fmt.Errorf("invalid year %d", p.Year)
	}
	return time.Month(p.Month), p.Year, nil
}

// NewBackupArchiveTask builds a backup archive task.
func NewBackupArchiveTask() *asynq.Task {
	return asynq.NewTask(TaskBackupArchive, nil, asynq.Queue(QueueDefault))
}

// NewMonthlyReportTask builds a monthly report task.
func NewMonthlyReportTask(payload MonthlyReportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMonthlyReport, body, asynq.Queue(QueueDefault)), nil
}
