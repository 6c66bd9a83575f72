// Package report aggregates orders into monthly summaries and supplier breakdowns.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mos234/vegetable-orders/internal/orders"
)

// UnknownSupplierID groups orders that carry no supplier id.
const UnknownSupplierID = "unknown"

// Summary holds the headline figures of a set of orders.
type Summary struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalExpense    float64 `json:"totalExpense"`
	AverageOrder    float64 `json:"averageOrder"`
	ActiveSuppliers int     `json:"activeSuppliers"`
}

// SupplierTotal is one row of a supplier breakdown. SupplierName is empty
// when the grouped orders carry no name.
type SupplierTotal struct {
	SupplierID   string  `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
	Percent      float64 `json:"percent"`
}

// MonthlyReport bundles every figure shown for one calendar month.
type MonthlyReport struct {
	Month     time.Month            `json:"month"`
	Year      int                   `json:"year"`
	Summary   Summary               `json:"summary"`
	Suppliers []SupplierTotal       `json:"suppliers"`
	Statuses  map[orders.Status]int `json:"statuses"`
	Orders    []orders.Order        `json:"orders"`
}

// OrdersInMonth keeps the orders whose order date falls in month/year.
// Orders without an order date are skipped.
func OrdersInMonth(list []orders.Order, month time.Month, year int) []orders.Order {
	out := make([]orders.Order, 0, len(list))
	for _, o := range list {
		if o.OrderDate.IsZero() {
			continue
		}
		if o.OrderDate.Month() == month && o.OrderDate.Year() == year {
			out = append(out, o)
		}
	}
	return out
}

// Summarize computes totals over list. Money values are rounded to 2 places.
func Summarize(list []orders.Order) Summary {
	total := sumTotals(list)
	suppliers := make(map[string]struct{}, len(list))
	for _, o := range list {
		suppliers[o.SupplierID] = struct{}{}
	}
	avg := decimal.Zero
	if len(list) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(list))))
	}
	return Summary{
		TotalOrders:     len(list),
		TotalExpense:    total.Round(2).InexactFloat64(),
		AverageOrder:    avg.Round(2).InexactFloat64(),
		ActiveSuppliers: len(suppliers),
	}
}

// SupplierBreakdown groups list by supplier id, sorted by total descending.
// Equal totals keep the order in which suppliers first appear.
func SupplierBreakdown(list []orders.Order) []SupplierTotal {
	return breakdown(list, func(o orders.Order) string {
		if o.SupplierID == "" {
			return UnknownSupplierID
		}
		return o.SupplierID
	})
}

// SupplierBreakdownByName groups list by the supplier name snapshot, the
// way the spreadsheet summary presents it.
func SupplierBreakdownByName(list []orders.Order) []SupplierTotal {
	return breakdown(list, func(o orders.Order) string { return o.SupplierName })
}

type group struct {
	row   SupplierTotal
	total decimal.Decimal
}

func breakdown(list []orders.Order, keyOf func(orders.Order) string) []SupplierTotal {
	index := map[string]int{}
	groups := make([]*group, 0)
	for _, o := range list {
		key := keyOf(o)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &group{row: SupplierTotal{SupplierID: o.SupplierID, SupplierName: o.SupplierName}})
		}
		g := groups[i]
		g.total = g.total.Add(decimal.NewFromFloat(o.Total))
		g.row.Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total.GreaterThan(groups[j].total)
	})

	grand := decimal.Zero
	for _, g := range groups {
		grand = grand.Add(g.total)
	}
	hundred := decimal.NewFromInt(100)
	out := make([]SupplierTotal, 0, len(groups))
	for _, g := range groups {
		row := g.row
		if row.SupplierID == "" {
			row.SupplierID = UnknownSupplierID
		}
		row.Total = g.total.Round(2).InexactFloat64()
		if grand.IsPositive() {
			row.Percent = g.total.Mul(hundred).Div(grand).Round(1).InexactFloat64()
		}
		out = append(out, row)
	}
	return out
}

// StatusCounts tallies list by status.
func StatusCounts(list []orders.Order) map[orders.Status]int {
	counts := make(map[orders.Status]int, len(orders.Statuses))
	for _, s := range orders.Statuses {
		counts[s] = 0
	}
	for _, o := range list {
		counts[o.Status]++
	}
	return counts
}

// Timeline returns list sorted by order date, oldest first.
func Timeline(list []orders.Order) []orders.Order {
	out := append([]orders.Order(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.Time().Before(out[j].OrderDate.Time())
	})
	return out
}

// Monthly builds the report for month/year from every stored order.
func Monthly(list []orders.Order, month time.Month, year int) MonthlyReport {
	inMonth := OrdersInMonth(list, month, year)
	return MonthlyReport{
		Month:     month,
		Year:      year,
		Summary:   Summarize(inMonth),
		Suppliers: SupplierBreakdown(inMonth),
		Statuses:  StatusCounts(inMonth),
		Orders:    inMonth,
	}
}

// GrandTotal sums the order totals of list.
func GrandTotal(list []orders.Order) float64 {
	return sumTotals(list).Round(2).InexactFloat64()
}

func sumTotals(list []orders.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range list {
		sum = sum.Add(decimal.NewFromFloat(o.Total))
	}
	return sum
}
