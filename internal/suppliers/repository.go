package suppliers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mos234/vegetable-orders/internal/shared"
	"github.com/mos234/vegetable-orders/internal/storage"
)

// ErrNotFound is returned when no supplier has the requested id.
var ErrNotFound = fmt.Errorf("supplier %w", shared.ErrNotFound)

// Repository manages the supplier collection.
type Repository struct {
	store *storage.Store
	now   func() time.Time
	newID func() string
	mu    sync.Mutex
}

// Option customises a Repository.
type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

// NewRepository builds a Repository over store.
func NewRepository(store *storage.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: time.Now, newID: shared.NewID}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns suppliers in insertion order.
func (r *Repository) List(ctx context.Context) ([]Supplier, error) {
	return storage.ReadCollection[Supplier](ctx, r.store, storage.KeySuppliers)
}

// Search filters suppliers whose name, phone or notes contain term, ignoring case.
func (r *Repository) Search(ctx context.Context, term string) ([]Supplier, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	out := make([]Supplier, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Phone), term) ||
			strings.Contains(strings.ToLower(s.Notes), term) {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetByID returns the supplier with id; ok is false when none exists.
func (r *Repository) GetByID(ctx context.Context, id string) (Supplier, bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Supplier{}, false, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, true, nil
		}
	}
	return Supplier{}, false, nil
}

// Create validates in, appends a new supplier and persists the collection.
func (r *Repository) Create(ctx context.Context, in Input) (Supplier, error) {
	in, err := normalize(in)
	if err != nil {
		return Supplier{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return Supplier{}, err
	}
	supplier := Supplier{
		ID:        r.newID(),
		Name:      in.Name,
		Phone:     in.Phone,
		Notes:     in.Notes,
		CreatedAt: r.now().UTC(),
	}
	all = append(all, supplier)
	if err := storage.WriteCollection(ctx, r.store, storage.KeySuppliers, all); err != nil {
		return Supplier{}, err
	}
	return supplier, nil
}

// Update replaces name, phone and notes of supplier id.
func (r *Repository) Update(ctx context.Context, id string, in Input) (Supplier, error) {
	in, err := normalize(in)
	if err != nil {
		return Supplier{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return Supplier{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		now := r.now().UTC()
		all[i].Name = in.Name
		all[i].Phone = in.Phone
		all[i].Notes = in.Notes
		all[i].UpdatedAt = &now
		if err := storage.WriteCollection(ctx, r.store, storage.KeySuppliers, all); err != nil {
			return Supplier{}, err
		}
		return all[i], nil
	}
	return Supplier{}, ErrNotFound
}

// Delete removes supplier id and reports whether anything was removed.
// Orders referencing the supplier keep their snapshot.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]Supplier, 0, len(all))
	for _, s := range all {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}
	if err := storage.WriteCollection(ctx, r.store, storage.KeySuppliers, kept); err != nil {
		return false, err
	}
	return true, nil
}
