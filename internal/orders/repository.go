package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mos234/vegetable-orders/internal/shared"
	"github.com/mos234/vegetable-orders/internal/storage"
)

// ErrNotFound is returned when no order has the requested id.
var ErrNotFound = fmt.Errorf("order %w", shared.ErrNotFound)

// Repository manages the order collection.
type Repository struct {
	store     *storage.Store
	now       func() time.Time
	newID     func() string
	numbering Numbering
	mu        sync.Mutex
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

// WithNumbering selects the order number policy.
func WithNumbering(n Numbering) Option {
	return func(r *Repository) { r.numbering = n }
}

// NewRepository builds a Repository over store.
func NewRepository(store *storage.Store, opts ...Option) *Repository {
	r := &Repository{store: store, now: time.Now, newID: shared.NewID, numbering: NumberingLast}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns orders in insertion order.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	return storage.ReadCollection[Order](ctx, r.store, storage.KeyOrders)
}

// GetByID returns the order with id; ok is false when none exists.
func (r *Repository) GetByID(ctx context.Context, id string) (Order, bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Order{}, false, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Order{}, false, nil
}

// Create assigns an id, an order number and a creation time to d and appends it.
func (r *Repository) Create(ctx context.Context, d Draft) (Order, error) {
	d, err := d.validate()
	if err != nil {
		return Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return Order{}, err
	}

	var number int64
	if r.numbering == NumberingSequence {
		counter, _, err := storage.ReadValue[int64](ctx, r.store, storage.KeyOrderSequence)
		if err != nil {
			return Order{}, err
		}
		number = nextFromSequence(counter, all)
	} else {
		number = nextFromLast(all)
	}

	order := Order{
		ID:            r.newID(),
		OrderNumber:   FormatOrderNumber(number),
		SupplierID:    d.SupplierID,
		SupplierName:  d.SupplierName,
		SupplierPhone: d.SupplierPhone,
		OrderDate:     d.OrderDate,
		DeliveryDate:  d.DeliveryDate,
		Items:         d.Items,
		Notes:         d.Notes,
		Total:         d.Total,
		Status:        d.Status,
		CreatedAt:     r.now().UTC(),
	}
	if order.Items == nil {
		order.Items = []Item{}
	}
	if order.Status == "" {
		order.Status = StatusDraft
	}
	all = append(all, order)

	if r.numbering == NumberingSequence {
		err = r.store.WriteCollections(ctx, map[string]any{
			storage.KeyOrders:        all,
			storage.KeyOrderSequence: number,
		})
	} else {
		err = storage.WriteCollection(ctx, r.store, storage.KeyOrders, all)
	}
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

// Update applies p to order id. Id, order number and creation time never change.
func (r *Repository) Update(ctx context.Context, id string, p Patch) (Order, error) {
	if err := p.validate(); err != nil {
		return Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return Order{}, err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		p.apply(&all[i])
		now := r.now().UTC()
		all[i].UpdatedAt = &now
		if err := storage.WriteCollection(ctx, r.store, storage.KeyOrders, all); err != nil {
			return Order{}, err
		}
		return all[i], nil
	}
	return Order{}, ErrNotFound
}

// SetStatus changes only the status of order id.
func (r *Repository) SetStatus(ctx context.Context, id string, status Status) (Order, error) {
	return r.Update(ctx, id, Patch{Status: &status})
}

// Delete removes order id and reports whether anything was removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]Order, 0, len(all))
	for _, o := range all {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}
	if err := storage.WriteCollection(ctx, r.store, storage.KeyOrders, kept); err != nil {
		return false, err
	}
	return true, nil
}

// FilterByStatus returns orders with status, in insertion order.
func (r *Repository) FilterByStatus(ctx context.Context, status Status) ([]Order, error) {
	return r.filter(ctx, func(o Order) bool { return o.Status == status })
}

// FilterBySupplier returns orders placed with supplierID, in insertion order.
func (r *Repository) FilterBySupplier(ctx context.Context, supplierID string) ([]Order, error) {
	return r.filter(ctx, func(o Order) bool { return o.SupplierID == supplierID })
}

func (r *Repository) filter(ctx context.Context, keep func(Order) bool) ([]Order, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Filter narrows Query results. Empty fields match everything.
type Filter struct {
	Status     Status
	SupplierID string
	Search     string
}

// Query returns the orders matching f, newest first. Search matches the
// order number, supplier name and notes, ignoring case.
func (r *Repository) Query(ctx context.Context, f Filter) ([]Order, error) {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out, err := r.filter(ctx, func(o Order) bool {
		if f.Status != "" && o.Status != f.Status {
			return false
		}
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			return false
		}
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(o.OrderNumber), term) ||
			strings.Contains(strings.ToLower(o.SupplierName), term) ||
			strings.Contains(strings.ToLower(o.Notes), term)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Stats counts orders per status.
type Stats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// CountByStatus tallies orders; unknown statuses count toward Total only.
func CountByStatus(all []Order) Stats {
	stats := Stats{Total: len(all)}
	for _, o := range all {
		switch o.Status {
		case StatusDraft:
			stats.Draft++
		case StatusSent:
			stats.Sent++
		case StatusDelivered:
			stats.Delivered++
		case StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// Stats counts the stored orders per status.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	all, err := r.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return CountByStatus(all), nil
}
