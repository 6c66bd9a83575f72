package backup

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mos234/vegetable-orders/internal/blob"
	"github.com/mos234/vegetable-orders/internal/platform/httpx"
)

const maxRestoreBytes = 32 << 20

// Handler serves snapshot download, restore and archive endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	blobs   blob.Store
}

// NewHandler builds a Handler. blobs may be nil, which disables archive endpoints.
func NewHandler(logger *slog.Logger, service *Service, blobs blob.Store) *Handler {
	return &Handler{logger: logger, service: service, blobs: blobs}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Download)
	r.Post("/restore", h.Restore)
	if h.blobs != nil {
		r.Get("/archives", h.ListArchives)
		r.Post("/archives", h.CreateArchive)
	}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Export(r.Context())
	if err != nil {
		h.logger.Error("export backup failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, snap); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Attachment(w, "application/json", Filename(snap.ExportDate.Local()), buf.Bytes())
}

type restoreResponse struct {
	Restored Counts `json:"restored"`
}

type confirmResponse struct {
	Detail  string  `json:"detail"`
	Preview Preview `json:"preview"`
}

// Restore replaces all data with the posted snapshot. Without confirm=true it
// only previews the change and answers 428.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRestoreBytes))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		preview, err := h.service.Preview(r.Context(), raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusPreconditionRequired, confirmResponse{
			Detail:  "restore replaces all existing data; repeat with confirm=true",
			Preview: preview,
		})
		return
	}
	counts, err := h.service.Import(r.Context(), raw)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, restoreResponse{Restored: counts})
}

func (h *Handler) ListArchives(w http.ResponseWriter, r *http.Request) {
	infos, err := h.blobs.List(r.Context(), ArchivePrefix)
	if err != nil {
		h.logger.Error("list archives failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if infos == nil {
		infos = []blob.Info{}
	}
	httpx.JSON(w, http.StatusOK, infos)
}

func (h *Handler) CreateArchive(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Archive(r.Context(), h.blobs)
	if err != nil {
		h.logger.Error("archive backup failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	httpx.JSON(w, http.StatusCreated, info)
}
