package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mos234/vegetable-orders/internal/backup"
	"github.com/mos234/vegetable-orders/internal/blob"
	"github.com/mos234/vegetable-orders/internal/i18n"
	"github.com/mos234/vegetable-orders/internal/messaging"
	"github.com/mos234/vegetable-orders/internal/observability"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/report/export"
	reporthttp "github.com/mos234/vegetable-orders/internal/report/http"
	"github.com/mos234/vegetable-orders/internal/storage"
	"github.com/mos234/vegetable-orders/internal/suppliers"
	"github.com/mos234/vegetable-orders/jobs"
)

// Container owns the long-lived services built from Config.
type Container struct {
	Config    *Config
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Store     *storage.Store
	Blobs     blob.Store
	Suppliers *suppliers.Repository
	Orders    *orders.Repository
	Backup    *backup.Service
	Messages  *messaging.Builder
	Labels    export.Labels
}

// Build opens the store and blob backends and constructs every service.
// Callers must Close the container.
func Build(ctx context.Context, cfg *Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if logger == nil {
		logger = NewLogger(cfg)
	}
	metrics := observability.NewMetrics()

	backend, err := storage.OpenBackend(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	store := storage.New(backend, storage.WithLogger(logger), storage.WithObserver(metrics))
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	blobs, err := blob.Open(ctx, cfg.BlobConfig())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	localizer := i18n.New(cfg.Locale)
	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Store:     store,
		Blobs:     blobs,
		Suppliers: suppliers.NewRepository(store),
		Orders:    orders.NewRepository(store, orders.WithNumbering(cfg.Numbering())),
		Backup:    backup.NewService(store, logger),
		Messages:  messaging.NewBuilder(localizer, cfg.CurrencySymbol, cfg.CountryCode),
		Labels:    export.Labels{Localizer: localizer, Currency: cfg.CurrencySymbol},
	}
	logger.Info("services ready",
		slog.String("store", cfg.StoreDriver),
		slog.String("blob", string(blobs.Driver())),
		slog.String("numbering", string(cfg.Numbering())),
	)
	return c, nil
}

// Router builds the HTTP handler over the container's services. jobsHandler
// may be nil when the job queue is disabled.
func (c *Container) Router(jobsHandler *jobs.Handler) http.Handler {
	return NewRouter(RouterParams{
		Logger:           c.Logger,
		Config:           c.Config,
		SuppliersHandler: suppliers.NewHandler(c.Logger, c.Suppliers),
		OrdersHandler:    orders.NewHandler(c.Logger, c.Orders, c.Labels.Localizer),
		MessagingHandler: messaging.NewHandler(c.Logger, c.Messages, c.Orders, c.Suppliers),
		ReportHandler:    reporthttp.NewHandler(c.Logger, c.Orders, c.Suppliers, c.Labels),
		BackupHandler:    backup.NewHandler(c.Logger, c.Backup, c.Blobs),
		JobsHandler:      jobsHandler,
		Metrics:          c.Metrics,
		AccessLog:        !c.Config.IsProduction(),
	})
}

// Close releases the store.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Store.Close()
}
