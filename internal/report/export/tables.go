// Package export turns orders and reports into spreadsheet tables and encodes
// them as XLSX workbooks or CSV.
package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mos234/vegetable-orders/internal/i18n"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/report"
	"github.com/mos234/vegetable-orders/internal/suppliers"
)

// Table is a grid of cells: strings, ints or float64s.
type Table [][]any

const rule = "──────────────────"

// Labels localizes table text and money.
type Labels struct {
	Localizer i18n.Localizer
	Currency  string
}

// DefaultLabels uses the Hebrew catalog and the shekel sign.
func DefaultLabels() Labels {
	return Labels{Localizer: i18n.New(i18n.DefaultLocale), Currency: "₪"}
}

func (l Labels) t(key string, args ...any) string { return l.Localizer.T(key, args...) }

// Money renders v with two decimals after the currency symbol.
func (l Labels) Money(v float64) string {
	return l.Currency + decimal.NewFromFloat(v).StringFixed(2)
}

func (l Labels) supplierName(name string) string {
	if name == "" {
		return l.t("Unknown supplier")
	}
	return name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// MonthLabel renders "<month name> <year>".
func (l Labels) MonthLabel(month time.Month, year int) string {
	return l.Localizer.MonthName(month) + " " + strconv.Itoa(year)
}

// SummaryTable lays out the summary sheet of a monthly report. Suppliers are
// grouped by name and listed by total, largest first.
func SummaryTable(r report.MonthlyReport, labels Labels, generatedAt time.Time) Table {
	byName := report.SupplierBreakdownByName(r.Orders)
	table := Table{
		{labels.t("Monthly Report - Vegetable Orders Management"), ""},
		{"", ""},
		{labels.t("Month:"), labels.MonthLabel(r.Month, r.Year)},
		{"", ""},
		{labels.t("General Summary"), ""},
		{rule, rule},
		{labels.t("Total orders:"), r.Summary.TotalOrders},
		{labels.t("Total expenses:"), labels.Money(r.Summary.TotalExpense)},
		{labels.t("Average per order:"), labels.Money(r.Summary.AverageOrder)},
		{labels.t("Active suppliers:"), len(byName)},
		{"", ""},
		{labels.t("Breakdown by Supplier"), ""},
		{rule, rule},
		{labels.t("Supplier Name"), labels.t("Total")},
	}
	for _, row := range byName {
		table = append(table, []any{
			labels.supplierName(row.SupplierName),
			labels.t("%s%s (%d orders)", labels.Currency, decimal.NewFromFloat(row.Total).StringFixed(2), row.Count),
		})
	}
	table = append(table,
		[]any{"", ""},
		[]any{rule, rule},
		[]any{labels.t("Generated on:"), i18n.DisplayDate(generatedAt)},
	)
	return table
}

func (l Labels) detailHeader() []any {
	return []any{
		l.t("Order No."), l.t("Supplier"), l.t("Order Date"), l.t("Delivery Date"), l.t("Item"),
		l.t("Quantity"), l.t("Unit"), l.t("Price"), l.t("Line Total"), l.t("Status"),
	}
}

func blankRow(n int) []any {
	row := make([]any, n)
	for i := range row {
		row[i] = ""
	}
	return row
}

// DetailTable lists every item of every order. Order fields appear on the
// first item row only; each order ends with a subtotal row and a blank row.
// Orders without items occupy a single row.
func DetailTable(list []orders.Order, labels Labels) Table {
	table := Table{labels.detailHeader()}
	for _, o := range list {
		number := orDash(o.OrderNumber)
		supplier := orDash(o.SupplierName)
		orderDate := o.OrderDate.Display()
		deliveryDate := o.DeliveryDate.Display()
		status := labels.t(o.Status.Label())

		if len(o.Items) == 0 {
			table = append(table, []any{
				number, supplier, orderDate, deliveryDate, labels.t("(no items)"),
				"", "", "", o.Total, status,
			})
			continue
		}
		for i, item := range o.Items {
			row := []any{"", "", "", "", orDash(item.Name), item.Quantity, orDash(item.Unit), item.Price, item.Total, ""}
			if i == 0 {
				row[0], row[1], row[2], row[3], row[9] = number, supplier, orderDate, deliveryDate, status
			}
			table = append(table, row)
		}
		table = append(table,
			[]any{"", "", "", "", labels.t("Order total:"), "", "", "", o.Total, ""},
			blankRow(10),
		)
	}
	table = append(table,
		blankRow(10),
		[]any{"", "", "", "", labels.t("Grand total:"), "", "", "", report.GrandTotal(list), ""},
	)
	return table
}

// OrdersTable is a one-row-per-order list export.
func OrdersTable(list []orders.Order, labels Labels) Table {
	table := Table{{
		labels.t("Order No."), labels.t("Supplier"), labels.t("Phone"), labels.t("Order Date"),
		labels.t("Delivery Date"), labels.t("Items"), labels.t("Total"), labels.t("Status"),
	}}
	for _, o := range list {
		table = append(table, []any{
			orDash(o.OrderNumber),
			orDash(o.SupplierName),
			orDash(o.SupplierPhone),
			o.OrderDate.Display(),
			o.DeliveryDate.Display(),
			len(o.Items),
			o.Total,
			labels.t(o.Status.Label()),
		})
	}
	return table
}

// SuppliersTable is a one-row-per-supplier list export.
func SuppliersTable(list []suppliers.Supplier, labels Labels) Table {
	table := Table{{labels.t("Supplier Name"), labels.t("Phone"), labels.t("Notes"), labels.t("Date Added")}}
	for _, s := range list {
		added := "-"
		if !s.CreatedAt.IsZero() {
			added = i18n.DisplayDate(s.CreatedAt.Local())
		}
		table = append(table, []any{orDash(s.Name), orDash(s.Phone), orDash(s.Notes), added})
	}
	return table
}
