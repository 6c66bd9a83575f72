package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/orders"
)

func order(id, supplierID, name string, total float64, date orders.Date, status orders.Status) orders.Order {
	return orders.Order{
		ID:           id,
		SupplierID:   supplierID,
		SupplierName: name,
		Total:        total,
		OrderDate:    date,
		Status:       status,
	}
}

func march(day int) orders.Date { return orders.NewDate(2025, time.March, day) }

func TestSummaryAndBreakdownExample(t *testing.T) {
	list := []orders.Order{
		order("1", "A", "Avi", 100, march(1), orders.StatusDraft),
		order("2", "A", "Avi", 50, march(2), orders.StatusSent),
		order("3", "B", "Beni", 30, march(3), orders.StatusSent),
	}

	summary := Summarize(list)
	assert.Equal(t, Summary{TotalOrders: 3, TotalExpense: 180, AverageOrder: 60, ActiveSuppliers: 2}, summary)

	breakdown := SupplierBreakdown(list)
	require.Len(t, breakdown, 2)
	assert.Equal(t, SupplierTotal{SupplierID: "A", SupplierName: "Avi", Total: 150, Count: 2, Percent: 83.3}, breakdown[0])
	assert.Equal(t, SupplierTotal{SupplierID: "B", SupplierName: "Beni", Total: 30, Count: 1, Percent: 16.7}, breakdown[1])
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Empty(t, SupplierBreakdown(nil))
}

func TestSummarizeAvoidsFloatDrift(t *testing.T) {
	list := []orders.Order{
		order("1", "A", "", 0.1, march(1), orders.StatusDraft),
		order("2", "A", "", 0.2, march(1), orders.StatusDraft),
	}
	assert.Equal(t, 0.3, Summarize(list).TotalExpense)
	assert.Equal(t, 0.15, Summarize(list).AverageOrder)
}

func TestBreakdownTiesKeepFirstAppearance(t *testing.T) {
	list := []orders.Order{
		order("1", "B", "Beni", 40, march(1), orders.StatusDraft),
		order("2", "", "", 40, march(1), orders.StatusDraft),
		order("3", "A", "Avi", 40, march(1), orders.StatusDraft),
	}
	breakdown := SupplierBreakdown(list)
	require.Len(t, breakdown, 3)
	assert.Equal(t, "B", breakdown[0].SupplierID)
	assert.Equal(t, UnknownSupplierID, breakdown[1].SupplierID)
	assert.Equal(t, "A", breakdown[2].SupplierID)
	assert.Equal(t, 33.3, breakdown[0].Percent)
}

func TestBreakdownByNameMergesSuppliersWithSameName(t *testing.T) {
	list := []orders.Order{
		order("1", "A", "Market", 10, march(1), orders.StatusDraft),
		order("2", "B", "Market", 20, march(1), orders.StatusDraft),
		order("3", "C", "Farm", 25, march(1), orders.StatusDraft),
	}
	rows := SupplierBreakdownByName(list)
	require.Len(t, rows, 2)
	assert.Equal(t, "Market", rows[0].SupplierName)
	assert.Equal(t, 30.0, rows[0].Total)
	assert.Equal(t, 2, rows[0].Count)
}

func TestOrdersInMonthSkipsUndatedAndOtherMonths(t *testing.T) {
	list := []orders.Order{
		order("1", "A", "", 10, march(31), orders.StatusDraft),
		order("2", "A", "", 10, orders.NewDate(2025, time.April, 1), orders.StatusDraft),
		order("3", "A", "", 10, orders.Date{}, orders.StatusDraft),
		order("4", "A", "", 10, orders.NewDate(2024, time.March, 5), orders.StatusDraft),
	}
	got := OrdersInMonth(list, time.March, 2025)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestMonthlyBundlesFigures(t *testing.T) {
	list := []orders.Order{
		order("1", "A", "Avi", 100, march(10), orders.StatusDelivered),
		order("2", "B", "Beni", 20, march(2), orders.StatusCancelled),
		order("3", "B", "Beni", 99, orders.NewDate(2025, time.February, 27), orders.StatusSent),
	}
	r := Monthly(list, time.March, 2025)
	assert.Equal(t, 2, r.Summary.TotalOrders)
	assert.Equal(t, 120.0, r.Summary.TotalExpense)
	assert.Equal(t, 1, r.Statuses[orders.StatusDelivered])
	assert.Equal(t, 1, r.Statuses[orders.StatusCancelled])
	assert.Equal(t, 0, r.Statuses[orders.StatusSent])
	assert.Len(t, r.Suppliers, 2)

	timeline := Timeline(r.Orders)
	assert.Equal(t, "2", timeline[0].ID)
	assert.Equal(t, "1", r.Orders[0].ID)
	assert.Equal(t, 120.0, GrandTotal(r.Orders))
}
