package suppliers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mos234/vegetable-orders/internal/platform/httpx"
)

// Service is the subset of Repository used by the HTTP handler.
type Service interface {
	Search(ctx context.Context, term string) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, bool, error)
	Create(ctx context.Context, in Input) (Supplier, error)
	Update(ctx context.Context, id string, in Input) (Supplier, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler serves the supplier JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("list suppliers failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, suppliers)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	supplier, ok, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("get supplier failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !ok {
		httpx.RespondError(w, ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	supplier, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logger.Warn("create supplier rejected", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("supplier created", slog.String("id", supplier.ID))
	httpx.JSON(w, http.StatusCreated, supplier)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	supplier, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete supplier failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if !removed {
		httpx.RespondError(w, ErrNotFound)
		return
	}
	h.logger.Info("supplier deleted", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
