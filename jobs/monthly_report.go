package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mos234/vegetable-orders/internal/blob"
	jobmetrics "github.com/mos234/vegetable-orders/internal/jobs"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/report"
	"github.com/mos234/vegetable-orders/internal/report/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderLister lists stored orders.
type OrderLister interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// MonthlyReportJob renders the monthly workbook and stores it under ReportPrefix.
type MonthlyReportJob struct {
	Orders  OrderLister
	Blobs   blob.Store
	Labels  export.Labels
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewMonthlyReportJob wires dependencies for the report handler.
func NewMonthlyReportJob(list OrderLister, blobs blob.Store, labels export.Labels, logger *slog.Logger, metrics *jobmetrics.Metrics) *MonthlyReportJob {
	return &MonthlyReportJob{
		Orders:  list,
		Blobs:   blobs,
		Labels:  labels,
		Logger:  logger,
		Metrics: metrics,
		clock:   time.Now,
	}
}

// ReportKey is the blob key of the workbook for month/year.
func ReportKey(month time.Month, year int) string {
	return ReportPrefix + export.MonthlyFilename(month, year)
}

// Handle processes TaskMonthlyReport tasks. Months without orders are skipped.
func (j *MonthlyReportJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Orders == nil || j.Blobs == nil {
		return errors.New("monthly report: handler not configured")
	}
	var payload MonthlyReportPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("monthly report payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	now := j.now()
	month, year, err := payload.Period(now)
	if err != nil {
		return fmt.Errorf("monthly report: %v: %w", err, asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskMonthlyReport)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Int("month", int(month)), slog.Int("year", year))
	all, err := j.Orders.List(ctx)
	if err != nil {
		logger.Error("load orders", slog.Any("error", err))
		return err
	}
	rep := report.Monthly(all, month, year)
	if len(rep.Orders) == 0 {
		logger.Info("no orders in month, report skipped")
		return nil
	}

	buf := &bytes.Buffer{}
	if err := export.WriteMonthlyXLSX(buf, rep, j.Labels, now); err != nil {
		return err
	}
	info, err := j.Blobs.Put(ctx, ReportKey(month, year), buf, xlsxContentType)
	if err != nil {
		logger.Error("store report", slog.Any("error", err))
		return err
	}
	j.Metrics.AddArchived("report", info.Size)
	logger.Info("monthly report stored", slog.String("key", info.Key), slog.Int("orders", rep.Summary.TotalOrders))
	return nil
}

func (j *MonthlyReportJob) now() time.Time {
	if j.clock == nil {
		return time.Now()
	}
	return j.clock()
}

func (j *MonthlyReportJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
