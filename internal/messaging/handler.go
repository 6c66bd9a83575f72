package messaging

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/platform/httpx"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

// OrderFinder looks up a stored order.
type OrderFinder interface {
	GetByID(ctx context.Context, id string) (orders.Order, bool, error)
}

// SupplierFinder looks up a stored supplier.
type SupplierFinder interface {
	GetByID(ctx context.Context, id string) (suppliers.Supplier, bool, error)
}

// Handler serves composed messages and contact links.
type Handler struct {
	logger    *slog.Logger
	builder   *Builder
	orders    OrderFinder
	suppliers SupplierFinder
}

// NewHandler constructs the messaging HTTP handler.
func NewHandler(logger *slog.Logger, builder *Builder, orders OrderFinder, suppliers SupplierFinder) *Handler {
	return &Handler{logger: logger, builder: builder, orders: orders, suppliers: suppliers}
}

// OrderMessage responds with the message and deep links for order {id}.
func (h *Handler) OrderMessage(w http.ResponseWriter, r *http.Request) {
	order, ok, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("load order for message failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.RespondError(w, orders.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, h.builder.ForOrder(order))
}

// SupplierContact responds with empty-message chat links for supplier {id}.
func (h *Handler) SupplierContact(w http.ResponseWriter, r *http.Request) {
	supplier, ok, err := h.suppliers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("load supplier for contact failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.RespondError(w, suppliers.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, Links{
		WhatsApp: WhatsAppLink(supplier.Phone, h.builder.countryCode, ""),
		SMS:      SMSLink(supplier.Phone, h.builder.countryCode, ""),
	})
}
