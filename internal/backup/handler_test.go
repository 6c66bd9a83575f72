package backup

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/blob"
)

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc, store := newTestService(t)
	seed(t, store)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, blob.NewMemory())
	r := chi.NewRouter()
	r.Route("/api/backup", h.MountRoutes)
	return r, svc
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr
}

func TestDownload(t *testing.T) {
	srv, _ := newTestRouter(t)
	rr := send(srv, http.MethodGet, "/api/backup", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "vegetable_orders_backup_")
	var snap Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Stats.SuppliersCount)
}

func TestRestoreRequiresConfirmation(t *testing.T) {
	srv, svc := newTestRouter(t)
	body := `{"data":{"suppliers":[],"orders":[]}}`

	rr := send(srv, http.MethodPost, "/api/backup/restore", body)
	require.Equal(t, http.StatusPreconditionRequired, rr.Code)
	assert.Contains(t, rr.Body.String(), `"incoming":{"suppliersCount":0,"ordersCount":0}`)

	snap, err := svc.Export(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Stats.SuppliersCount)

	rr = send(srv, http.MethodPost, "/api/backup/restore?confirm=true", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	snap, err = svc.Export(t.Context())
	require.NoError(t, err)
	assert.Zero(t, snap.Stats.SuppliersCount)
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	srv, _ := newTestRouter(t)
	rr := send(srv, http.MethodPost, "/api/backup/restore?confirm=true", `{"data":{"suppliers":[]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = send(srv, http.MethodPost, "/api/backup/restore", `nope`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestArchiveEndpoints(t *testing.T) {
	srv, _ := newTestRouter(t)
	rr := send(srv, http.MethodPost, "/api/backup/archives", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = send(srv, http.MethodGet, "/api/backup/archives", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var infos []blob.Info
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &infos))
	assert.Len(t, infos, 1)
}
