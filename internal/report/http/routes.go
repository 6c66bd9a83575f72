package reporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers report endpoints. Workbook downloads get a tighter
// per-IP limit than the JSON report.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(20, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/monthly", h.handleMonthly)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/monthly.xlsx", h.handleMonthlyXLSX)
		gr.Get("/monthly.csv", h.handleMonthlyCSV)
		gr.Get("/orders.xlsx", h.handleOrdersXLSX)
		gr.Get("/suppliers.xlsx", h.handleSuppliersXLSX)
	})
}
