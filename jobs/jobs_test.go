package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/backup"
	"github.com/mos234/vegetable-orders/internal/blob"
	jobmetrics "github.com/mos234/vegetable-orders/internal/jobs"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/report/export"
	"github.com/mos234/vegetable-orders/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonthlyReportPayloadPeriod(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

	month, year, err := MonthlyReportPayload{}.Period(now)
	require.NoError(t, err)
	assert.Equal(t, time.December, month)
	assert.Equal(t, 2024, year)

	month, year, err = MonthlyReportPayload{Month: 3, Year: 2025}.Period(now)
	require.NoError(t, err)
	assert.Equal(t, time.March, month)
	assert.Equal(t, 2025, year)

	_, _, err = MonthlyReportPayload{Month: 13, Year: 2025}.Period(now)
	assert.Error(t, err)
	_, _, err = MonthlyReportPayload{Month: 3}.Period(now)
	assert.Error(t, err)
}

func TestBackupArchiveJob(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryBackend())
	require.NoError(t, store.Initialize(ctx))
	blobs := blob.NewMemory()
	metrics := jobmetrics.NewMetrics(prometheus.NewRegistry())

	job := NewBackupArchiveJob(backup.NewService(store, discardLogger()), blobs, discardLogger(), metrics)
	require.NoError(t, job.Handle(ctx, NewBackupArchiveTask()))

	archived, err := blobs.List(ctx, backup.ArchivePrefix)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Greater(t, archived[0].Size, int64(0))

	var empty *BackupArchiveJob
	assert.Error(t, empty.Handle(ctx, NewBackupArchiveTask()))
}

type orderList []orders.Order

func (l orderList) List(context.Context) ([]orders.Order, error) { return l, nil }

type failingList struct{}

func (failingList) List(context.Context) ([]orders.Order, error) { return nil, errors.New("store down") }

func TestMonthlyReportJob(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	list := orderList{
		{ID: "o1", OrderNumber: "#1001", SupplierID: "s1", SupplierName: "Avi", OrderDate: orders.NewDate(2025, time.February, 3), Total: 120, Status: orders.StatusSent},
		{ID: "o2", OrderNumber: "#1002", SupplierID: "s2", SupplierName: "Beni", OrderDate: orders.NewDate(2025, time.March, 3), Total: 30, Status: orders.StatusDraft},
	}
	job := NewMonthlyReportJob(list, blobs, export.DefaultLabels(), discardLogger(), nil)
	job.clock = func() time.Time { return time.Date(2025, time.March, 1, 6, 0, 0, 0, time.Local) }

	task, err := NewMonthlyReportTask(MonthlyReportPayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(ctx, task))

	info, body, err := blobs.Get(ctx, ReportKey(time.February, 2025))
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "reports/vegetable_report_02_2025.xlsx", info.Key)
	assert.Equal(t, xlsxContentType, info.ContentType)

	// no orders in January: nothing stored, no error
	task, err = NewMonthlyReportTask(MonthlyReportPayload{Month: 1, Year: 2025})
	require.NoError(t, err)
	require.NoError(t, job.Handle(ctx, task))
	_, _, err = blobs.Get(ctx, ReportKey(time.January, 2025))
	assert.ErrorIs(t, err, blob.ErrNotFound)

	bad := asynq.NewTask(TaskMonthlyReport, []byte(`{"month":14,"year":2025}`))
	assert.ErrorIs(t, job.Handle(ctx, bad), asynq.SkipRetry)

	failing := NewMonthlyReportJob(failingList{}, blobs, export.DefaultLabels(), discardLogger(), nil)
	assert.Error(t, failing.Handle(ctx, task))
}

func TestClientEnqueuesOnRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	info, err := client.EnqueueBackupArchive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TaskBackupArchive, info.Type)
	assert.Equal(t, QueueDefault, info.Queue)

	info, err = client.EnqueueMonthlyReport(context.Background(), MonthlyReportPayload{Month: 2, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, TaskMonthlyReport, info.Type)

	_, err = client.EnqueueMonthlyReport(context.Background(), MonthlyReportPayload{Month: 0, Year: 2025})
	assert.Error(t, err)
}

func TestNewWorkerSkipsEmptyCron(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := asynq.RedisClientOpt{Addr: mr.Addr()}

	w, err := NewWorker(WorkerConfig{RedisOpts: opts, Logger: discardLogger(), Cron: []CronRegistration{{Spec: "", Task: NewBackupArchiveTask()}}})
	require.NoError(t, err)
	assert.False(t, w.Scheduled())

	w, err = NewWorker(WorkerConfig{RedisOpts: opts, Logger: discardLogger(), Cron: []CronRegistration{{Spec: "0 2 * * *", Task: NewBackupArchiveTask()}}})
	require.NoError(t, err)
	assert.True(t, w.Scheduled())

	_, err = NewWorker(WorkerConfig{RedisOpts: opts, Cron: []CronRegistration{{Spec: "not a cron", Task: NewBackupArchiveTask()}}})
	assert.Error(t, err)
}

type stubEnqueuer struct {
	report MonthlyReportPayload
}

func (s *stubEnqueuer) EnqueueBackupArchive(context.Context) (*asynq.TaskInfo, error) {
	return &asynq.TaskInfo{ID: "b1", Type: TaskBackupArchive, Queue: QueueDefault}, nil
}

func (s *stubEnqueuer) EnqueueMonthlyReport(_ context.Context, p MonthlyReportPayload) (*asynq.TaskInfo, error) {
	s.report = p
	return &asynq.TaskInfo{ID: "r1", Type: TaskMonthlyReport, Queue: QueueDefault}, nil
}

func TestHandlerEndpoints(t *testing.T) {
	stub := &stubEnqueuer{}
	r := chi.NewRouter()
	NewHandler(nil, stub, discardLogger()).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/backup", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/report?month=2&year=2025", nil))
	require.Equal(t, http.StatusAccepted, rr.Code)
	var body enqueued
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "r1", body.ID)
	assert.Equal(t, MonthlyReportPayload{Month: 2, Year: 2025}, stub.report)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/report?month=feb", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
