// Package backup exports and restores the full supplier and order collections.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mos234/vegetable-orders/internal/blob"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/shared"
	"github.com/mos234/vegetable-orders/internal/storage"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

const (
	// FormatVersion is written to every snapshot.
	FormatVersion = "1.0"
	// AppName identifies the producing application inside a snapshot.
	AppName = "Vegetable Orders Management"
	// ArchivePrefix is the blob key prefix of archived snapshots.
	ArchivePrefix = "backups/"
)

// ErrImport is returned when a snapshot cannot be restored. Nothing is written in that case.
var ErrImport = fmt.Errorf("backup import: %w", shared.ErrUnprocessable)

// Data holds both collections.
type Data struct {
	Suppliers []suppliers.Supplier `json:"suppliers"`
	Orders    []orders.Order       `json:"orders"`
}

// Counts summarizes collection sizes.
type Counts struct {
	SuppliersCount int `json:"suppliersCount"`
	OrdersCount    int `json:"ordersCount"`
}

// Snapshot is the serialized backup document.
type Snapshot struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	AppName    string    `json:"appName"`
	Data       Data      `json:"data"`
	Stats      Counts    `json:"stats"`
}

// Preview compares the stored collections with an incoming snapshot.
type Preview struct {
	Current    Counts     `json:"current"`
	Incoming   Counts     `json:"incoming"`
	ExportDate *time.Time `json:"exportDate,omitempty"`
}

// Service reads and replaces the stored collections as a whole.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds a Service over store.
func NewService(store *storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Filename returns vegetable_orders_backup_YYYY-MM-DD_HH-MM.json for t.
func Filename(t time.Time) string {
	return "vegetable_orders_backup_" + t.Format("2006-01-02_15-04") + ".json"
}

// Encode writes s as indented JSON.
func Encode(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(s)
}

func (s *Service) current(ctx context.Context) (Data, error) {
	sups, err := storage.ReadCollection[suppliers.Supplier](ctx, s.store, storage.KeySuppliers)
	if err != nil {
		return Data{}, err
	}
	ords, err := storage.ReadCollection[orders.Order](ctx, s.store, storage.KeyOrders)
	if err != nil {
		return Data{}, err
	}
	return Data{Suppliers: sups, Orders: ords}, nil
}

// Export captures both collections.
func (s *Service) Export(ctx context.Context) (Snapshot, error) {
	data, err := s.current(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:    FormatVersion,
		ExportDate: s.now().UTC(),
		AppName:    AppName,
		Data:       data,
		Stats:      Counts{SuppliersCount: len(data.Suppliers), OrdersCount: len(data.Orders)},
	}, nil
}

type envelope struct {
	ExportDate *string `json:"exportDate"`
	Data       *struct {
		Suppliers json.RawMessage `json:"suppliers"`
		Orders    json.RawMessage `json:"orders"`
	} `json:"data"`
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decode validates raw and returns its collections.
func decode(raw []byte) (Data, *time.Time, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Data{}, nil, fmt.Errorf("%w: malformed json: %v", ErrImport, err)
	}
	if env.Data == nil {
		return Data{}, nil, fmt.Errorf("%w: missing data", ErrImport)
	}
	if !isArray(env.Data.Suppliers) {
		return Data{}, nil, fmt.Errorf("%w: data.suppliers must be an array", ErrImport)
	}
	if !isArray(env.Data.Orders) {
		return Data{}, nil, fmt.Errorf("%w: data.orders must be an array", ErrImport)
	}
	var data Data
	if err := json.Unmarshal(env.Data.Suppliers, &data.Suppliers); err != nil {
		return Data{}, nil, fmt.Errorf("%w: suppliers: %v", ErrImport, err)
	}
	if err := json.Unmarshal(env.Data.Orders, &data.Orders); err != nil {
		return Data{}, nil, fmt.Errorf("%w: orders: %v", ErrImport, err)
	}
	return data, parseExportDate(env.ExportDate), nil
}

func parseExportDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil
	}
	return &t
}

// Preview validates raw and reports current and incoming counts without writing.
func (s *Service) Preview(ctx context.Context, raw []byte) (Preview, error) {
	incoming, exportDate, err := decode(raw)
	if err != nil {
		return Preview{}, err
	}
	current, err := s.current(ctx)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Current:    Counts{SuppliersCount: len(current.Suppliers), OrdersCount: len(current.Orders)},
		Incoming:   Counts{SuppliersCount: len(incoming.Suppliers), OrdersCount: len(incoming.Orders)},
		ExportDate: exportDate,
	}, nil
}

// Import replaces both collections with the contents of raw in one write.
func (s *Service) Import(ctx context.Context, raw []byte) (Counts, error) {
	data, _, err := decode(raw)
	if err != nil {
		s.logger.Warn("backup rejected", slog.Any("error", err))
		return Counts{}, err
	}
	if err := s.store.WriteCollections(ctx, map[string]any{
		storage.KeySuppliers: data.Suppliers,
		storage.KeyOrders:    data.Orders,
	}); err != nil {
		return Counts{}, err
	}
	counts := Counts{SuppliersCount: len(data.Suppliers), OrdersCount: len(data.Orders)}
	s.logger.Info("backup restored",
		slog.Int("suppliers", counts.SuppliersCount),
		slog.Int("orders", counts.OrdersCount),
	)
	return counts, nil
}

// Archive exports a snapshot into store under ArchivePrefix.
func (s *Service) Archive(ctx context.Context, store blob.Store) (blob.Info, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return blob.Info{}, err
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, snap); err != nil {
		return blob.Info{}, err
	}
	key := ArchivePrefix + Filename(snap.ExportDate.Local())
	info, err := store.Put(ctx, key, buf, "application/json")
	if err != nil {
		return blob.Info{}, fmt.Errorf("backup: archive: %w", err)
	}
	s.logger.Info("backup archived", slog.String("key", info.Key), slog.String("driver", string(store.Driver())))
	return info, nil
}
