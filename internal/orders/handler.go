package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mos234/vegetable-orders/internal/platform/httpx"
	"github.com/mos234/vegetable-orders/internal/shared"
)

// Service is the subset of Repository used by the HTTP handler.
type Service interface {
	Query(ctx context.Context, f Filter) ([]Order, error)
	Stats(ctx context.Context) (Stats, error)
	GetByID(ctx context.Context, id string) (Order, bool, error)
	Create(ctx context.Context, d Draft) (Order, error)
	Update(ctx context.Context, id string, p Patch) (Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler serves the order JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	labels  Labeler
}

// NewHandler builds a Handler. labels localizes unit names of submitted items.
func NewHandler(logger *slog.Logger, service Service, labels Labeler) *Handler {
	return &Handler{logger: logger, service: service, labels: labels}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		Status:     Status(q.Get("status")),
		SupplierID: q.Get("supplier"),
		Search:     q.Get("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		httpx.RespondError(w, shared.FieldError("status", "must be one of draft sent delivered cancelled"))
		return
	}
	orders, err := h.service.Query(r.Context(), filter)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("order stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

type unitOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (h *Handler) Units(w http.ResponseWriter, r *http.Request) {
	out := make([]unitOption, 0, len(Units))
	for _, u := range Units {
		out = append(out, unitOption{Value: u.Code, Label: h.labels.T(u.Label)})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	order, ok, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("get order failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.RespondError(w, ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var draft Draft
	if err := httpx.DecodeJSON(r, &draft); err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.Create(r.Context(), draft.Complete(h.labels))
	if err != nil {
		h.logger.Warn("create order rejected", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("order created", slog.String("id", order.ID), slog.String("number", order.OrderNumber))
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete order failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !removed {
		httpx.RespondError(w, ErrNotFound)
		return
	}
	h.logger.Info("order deleted", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
