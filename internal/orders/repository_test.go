package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/shared"
	"github.com/mos234/vegetable-orders/internal/storage"
)

func newTestRepository(t *testing.T, opts ...Option) (*Repository, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryBackend())
	require.NoError(t, store.Initialize(context.Background()))
	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	base := []Option{
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("ord-%d", seq)
		}),
	}
	return NewRepository(store, append(base, opts...)...), store
}

func sampleDraft(supplierID string) Draft {
	return Draft{
		SupplierID:    supplierID,
		SupplierName:  "Avi Farms",
		SupplierPhone: "050-1234567",
		OrderDate:     NewDate(2025, time.March, 3),
		DeliveryDate:  NewDate(2025, time.March, 5),
		Items: []Item{
			{Name: "Tomatoes", Quantity: 2, Unit: "kg", UnitValue: "kg", Price: 10, Total: 20},
		},
		Total: 20,
	}
}

func TestCreateAssignsFirstNumberAndDefaults(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	order, err := repo.Create(ctx, Draft{SupplierID: "sup-1"})
	require.NoError(t, err)
	assert.Equal(t, "#1001", order.OrderNumber)
	assert.Equal(t, StatusDraft, order.Status)
	assert.Equal(t, []Item{}, order.Items)
	assert.Zero(t, order.Total)

	got, ok, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order, got)
}

func TestCreateFollowsLastStoredNumber(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, storage.WriteCollection(ctx, store, storage.KeyOrders, []Order{
		{ID: "legacy", OrderNumber: "#1042", SupplierID: "sup-1", Status: StatusSent},
	}))

	order, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "#1043", order.OrderNumber)
}

func TestCreateFallsBackWhenLastNumberUnparseable(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, storage.WriteCollection(ctx, store, storage.KeyOrders, []Order{
		{ID: "legacy", OrderNumber: "draft", SupplierID: "sup-1"},
	}))

	order, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "#1001", order.OrderNumber)
}

func TestLastNumberingReusesNumberOfDeletedOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	require.Equal(t, "#1002", second.OrderNumber)

	removed, err := repo.Delete(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "#1002", third.OrderNumber)
	assert.Equal(t, "#1001", first.OrderNumber)
}

func TestSequenceNumberingNeverReuses(t *testing.T) {
	repo, store := newTestRepository(t, WithNumbering(NumberingSequence))
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	_, err = repo.Delete(ctx, second.ID)
	require.NoError(t, err)

	third, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "#1003", third.OrderNumber)

	counter, ok, err := storage.ReadValue[int64](ctx, store, storage.KeyOrderSequence)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 1003, counter)
}

func TestSequenceNumberingContinuesFromExistingOrders(t *testing.T) {
	repo, store := newTestRepository(t, WithNumbering(NumberingSequence))
	ctx := context.Background()
	require.NoError(t, storage.WriteCollection(ctx, store, storage.KeyOrders, []Order{
		{ID: "legacy", OrderNumber: "#1042", SupplierID: "sup-1"},
	}))

	order, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	assert.Equal(t, "#1043", order.OrderNumber)
}

func TestCreateValidatesDraft(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, Draft{SupplierID: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))
	var vErr *shared.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "supplierId")

	_, err = repo.Create(ctx, Draft{SupplierID: "sup-1", Status: "archived"})
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "status")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateRejectsUnparseableDates(t *testing.T) {
	repo, _ := newTestRepository(t)
	draft := sampleDraft("sup-1")
	draft.DeliveryDate = Date{raw: "next week"}

	_, err := repo.Create(context.Background(), draft)
	var vErr *shared.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "deliveryDate")
}

func TestUpdateAppliesPatchOnly(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	created, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)

	notes := "leave at the back door"
	delivery := NewDate(2025, time.March, 7)
	updated, err := repo.Update(ctx, created.ID, Patch{Notes: &notes, DeliveryDate: &delivery})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.OrderNumber, updated.OrderNumber)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, created.Items, updated.Items)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "2025-03-07", updated.DeliveryDate.String())
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateMissingOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	_, err := repo.Update(context.Background(), "nope", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	created, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)

	updated, err := repo.SetStatus(ctx, created.ID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)

	_, err = repo.SetStatus(ctx, created.ID, Status("lost"))
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteUnknownLeavesCollection(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFiltersAndQuery(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)
	b := sampleDraft("sup-2")
	b.SupplierName = "Green Valley"
	b.Status = StatusSent
	b.Notes = "urgent"
	second, err := repo.Create(ctx, b)
	require.NoError(t, err)
	third, err := repo.Create(ctx, sampleDraft("sup-1"))
	require.NoError(t, err)

	bySupplier, err := repo.FilterBySupplier(ctx, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, third.ID}, ids(bySupplier))

	sent, err := repo.FilterByStatus(ctx, StatusSent)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, ids(sent))

	newest, err := repo.Query(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID, a.ID}, ids(newest))

	found, err := repo.Query(ctx, Filter{Search: "URGENT"})
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, ids(found))

	found, err = repo.Query(ctx, Filter{Search: "#1003"})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID}, ids(found))

	found, err = repo.Query(ctx, Filter{SupplierID: "sup-1", Status: StatusSent})
	require.NoError(t, err)
	assert.Empty(t, found)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Draft: 2, Sent: 1}, stats)
}

func ids(orders []Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
