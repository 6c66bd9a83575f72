package reporthttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/platform/httpx"
	"github.com/mos234/vegetable-orders/internal/report"
	"github.com/mos234/vegetable-orders/internal/report/export"
	"github.com/mos234/vegetable-orders/internal/shared"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderSource lists stored orders.
type OrderSource interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// SupplierSource lists stored suppliers.
type SupplierSource interface {
	List(ctx context.Context) ([]suppliers.Supplier, error)
}

// Handler serves monthly reports and spreadsheet exports.
type Handler struct {
	logger    *slog.Logger
	orders    OrderSource
	suppliers SupplierSource
	labels    export.Labels
	now       func() time.Time
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, orders OrderSource, suppliers SupplierSource, labels export.Labels) *Handler {
	return &Handler{logger: logger, orders: orders, suppliers: suppliers, labels: labels, now: time.Now}
}

// parsePeriod reads month and year, defaulting to the current month.
func (h *Handler) parsePeriod(r *http.Request) (time.Month, int, error) {
	now := h.now()
	month, year := now.Month(), now.Year()
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("month")); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, shared.FieldError("month", "must be between 1 and 12")
		}
		month = time.Month(m)
	}
	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return 0, 0, shared.FieldError("year", "must be a four digit year")
		}
		year = y
	}
	return month, year, nil
}

func (h *Handler) monthly(ctx context.Context, month time.Month, year int) (report.MonthlyReport, error) {
	list, err := h.orders.List(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}
	return report.Monthly(list, month, year), nil
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	month, year, err := h.parsePeriod(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.monthly(r.Context(), month, year)
	if err != nil {
		h.logger.Error("monthly report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

func (h *Handler) handleMonthlyXLSX(w http.ResponseWriter, r *http.Request) {
	month, year, err := h.parsePeriod(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	key := fmt.Sprintf("monthly:%04d-%02d", year, int(month))
	val, err, reused := singleflightBuild(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		rep, err := h.monthly(ctx, month, year)
		if err != nil {
			return nil, err
		}
		if len(rep.Orders) == 0 {
			return nil, errNoData
		}
		buf := &bytes.Buffer{}
		if err := export.WriteMonthlyXLSX(buf, rep, h.labels, h.now()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		h.respondExportError(w, err)
		return
	}
	h.logger.Debug("monthly workbook built", slog.String("period", key), slog.Bool("shared", reused))
	httpx.Attachment(w, xlsxContentType, export.MonthlyFilename(month, year), val.([]byte))
}

func (h *Handler) handleMonthlyCSV(w http.ResponseWriter, r *http.Request) {
	month, year, err := h.parsePeriod(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.monthly(r.Context(), month, year)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	buf := &bytes.Buffer{}
	part := r.URL.Query().Get("part")
	switch part {
	case "", "summary":
		part = "summary"
		err = export.WriteSummaryCSV(buf, rep, h.labels, h.now())
	case "detail":
		err = export.WriteDetailCSV(buf, rep, h.labels)
	default:
		httpx.RespondError(w, shared.FieldError("part", "must be one of summary detail"))
		return
	}
	if err != nil {
		h.logger.Error("monthly csv failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	filename := fmt.Sprintf("vegetable_report_%s_%02d_%d.csv", part, int(month), year)
	httpx.Attachment(w, "text/csv; charset=utf-8", filename, buf.Bytes())
}

func (h *Handler) handleOrdersXLSX(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if status := orders.Status(r.URL.Query().Get("status")); status != "" {
		kept := list[:0]
		for _, o := range list {
			if o.Status == status {
				kept = append(kept, o)
			}
		}
		list = kept
	}
	if len(list) == 0 {
		h.respondExportError(w, errNoData)
		return
	}
	buf := &bytes.Buffer{}
	if err := export.WriteOrdersXLSX(buf, list, h.labels); err != nil {
		h.respondExportError(w, err)
		return
	}
	httpx.Attachment(w, xlsxContentType, "orders_export.xlsx", buf.Bytes())
}

func (h *Handler) handleSuppliersXLSX(w http.ResponseWriter, r *http.Request) {
	list, err := h.suppliers.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if len(list) == 0 {
		h.respondExportError(w, errNoData)
		return
	}
	buf := &bytes.Buffer{}
	if err := export.WriteSuppliersXLSX(buf, list, h.labels); err != nil {
		h.respondExportError(w, err)
		return
	}
	httpx.Attachment(w, xlsxContentType, "suppliers_export.xlsx", buf.Bytes())
}

func (h *Handler) respondExportError(w http.ResponseWriter, err error) {
	if err == errNoData {
		httpx.Problem(w, http.StatusNotFound, "No Data", "nothing to export")
		return
	}
	h.logger.Error("export failed", slog.Any("error", err))
	httpx.RespondError(w, err)
}
