package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mos234/vegetable-orders/internal/backup"
	"github.com/mos234/vegetable-orders/internal/messaging"
	"github.com/mos234/vegetable-orders/internal/observability"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/platform/httpx"
	reporthttp "github.com/mos234/vegetable-orders/internal/report/http"
	"github.com/mos234/vegetable-orders/internal/suppliers"
	"github.com/mos234/vegetable-orders/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SuppliersHandler *suppliers.Handler
	OrdersHandler    *orders.Handler
	MessagingHandler *messaging.Handler
	ReportHandler    *reporthttp.Handler
	BackupHandler    *backup.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter constructs the chi.Router serving the local JSON API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if params.AccessLog {
		r.Use(chimw.Logger)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported on "+r.URL.Path)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if params.SuppliersHandler != nil {
			api.Route("/suppliers", func(sr chi.Router) {
				params.SuppliersHandler.MountRoutes(sr)
				if params.MessagingHandler != nil {
					sr.Get("/{id}/contact", params.MessagingHandler.SupplierContact)
				}
			})
		}
		if params.OrdersHandler != nil {
			api.Route("/orders", func(or chi.Router) {
				params.OrdersHandler.MountRoutes(or)
				if params.MessagingHandler != nil {
					or.Get("/{id}/message", params.MessagingHandler.OrderMessage)
				}
			})
		}
		if params.ReportHandler != nil {
			api.Route("/reports", params.ReportHandler.MountRoutes)
		}
		if params.BackupHandler != nil {
			api.Route("/backup", params.BackupHandler.MountRoutes)
		}
		if params.JobsHandler != nil {
			api.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
