// Package storage persists whole collections as JSON blobs under fixed keys.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

const (
	// KeySuppliers holds the JSON array of suppliers.
	KeySuppliers = "vegetable_suppliers"
	// KeyOrders holds the JSON array of orders.
	KeyOrders = "vegetable_orders"
	// KeyOrderSequence holds the monotonic order-number counter used by the sequence policy.
	KeyOrderSequence = "vegetable_order_seq"
)

// CollectionKeys lists the keys Initialize guarantees to exist.
var CollectionKeys = []string{KeySuppliers, KeyOrders}

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: backend closed")

// Backend is a synchronous key-value store of opaque payloads.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	// SetMany stores every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
	Close() error
}

// Observer receives storage events; observability.Metrics implements it.
type Observer interface {
	ObserveRead(key string)
	ObserveWrite(key string)
	ObserveCorrupt(key string)
}

type nopObserver struct{}

func (nopObserver) ObserveRead(string)    {}
func (nopObserver) ObserveWrite(string)   {}
func (nopObserver) ObserveCorrupt(string) {}

// Store adapts a Backend to collection reads and writes.
type Store struct {
	backend  Backend
	logger   *slog.Logger
	observer Observer
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for corrupt-data warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(observer Observer) Option {
	return func(s *Store) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// New wraps backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: slog.Default(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend exposes the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

// Close releases the backend.
func (s *Store) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// Initialize writes an empty array to every collection key that is missing.
// Existing values, including corrupt ones, are left untouched.
func (s *Store) Initialize(ctx context.Context) error {
	for _, key := range CollectionKeys {
		_, ok, err := s.backend.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("storage: initialize %s: %w", key, err)
		}
		if ok {
			continue
		}
		if err := s.backend.Set(ctx, key, []byte("[]")); err != nil {
			return fmt.Errorf("storage: initialize %s: %w", key, err)
		}
		s.observer.ObserveWrite(key)
	}
	s.logger.Debug("storage initialized")
	return nil
}

// ReadCollection loads the collection stored under key. Missing keys and
// undecodable payloads both yield an empty slice.
func ReadCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	s.observer.ObserveRead(key)
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("corrupt collection treated as empty", slog.String("key", key), slog.Any("error", err))
		s.observer.ObserveCorrupt(key)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteCollection replaces the collection stored under key.
func WriteCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	s.observer.ObserveWrite(key)
	return nil
}

// WriteCollections encodes every value first and then stores all of them in
// one backend call, so a failed encode never leaves a partial write.
func (s *Store) WriteCollections(ctx context.Context, values map[string]any) error {
	entries := make(map[string][]byte, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("storage: encode %s: %w", key, err)
		}
		entries[key] = raw
	}
	if err := s.backend.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("storage: write collections: %w", err)
	}
	for key := range entries {
		s.observer.ObserveWrite(key)
	}
	return nil
}

// ReadValue decodes a single JSON value; ok is false when the key is absent or corrupt.
func ReadValue[T any](ctx context.Context, s *Store, key string) (value T, ok bool, err error) {
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return value, false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	s.observer.ObserveRead(key)
	if !found {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("corrupt value ignored", slog.String("key", key), slog.Any("error", err))
		s.observer.ObserveCorrupt(key)
		var zero T
		return zero, false, nil
	}
	return value, true, nil
}

// WriteValue stores a single JSON value.
func WriteValue[T any](ctx context.Context, s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	s.observer.ObserveWrite(key)
	return nil
}
