package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status tracks an order through its lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusDraft, StatusSent, StatusDelivered, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Label returns the catalog key used to display s. Unknown values display as drafts.
func (s Status) Label() string {
	switch s {
	case StatusSent:
		return "Sent"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Draft"
	}
}

// Item is one order line. Unit holds the display label and UnitValue the unit code.
type Item struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitValue string  `json:"unitValue"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// Order is a purchase order with a snapshot of the supplier taken at creation.
type Order struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	SupplierID    string     `json:"supplierId"`
	SupplierName  string     `json:"supplierName"`
	SupplierPhone string     `json:"supplierPhone"`
	OrderDate     Date       `json:"orderDate"`
	DeliveryDate  Date       `json:"deliveryDate"`
	Items         []Item     `json:"items"`
	Notes         string     `json:"notes"`
	Total         float64    `json:"total"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Unit is an entry of the unit catalog. Label is an i18n key.
type Unit struct {
	Code  string `json:"value"`
	Label string `json:"label"`
}

// Units is the catalog offered when adding items.
var Units = []Unit{
	{Code: "kg", Label: "kg"},
	{Code: "unit", Label: "Unit"},
	{Code: "box", Label: "Box"},
	{Code: "bunch", Label: "Bunch"},
	{Code: "bag", Label: "Bag"},
}

// LookupUnit finds a unit by code.
func LookupUnit(code string) (Unit, bool) {
	for _, u := range Units {
		if u.Code == code {
			return u, true
		}
	}
	return Unit{}, false
}

// Labeler translates catalog keys.
type Labeler interface {
	T(key string, args ...any) string
}

// NewItem builds an item for unitCode with total = qty × price.
// Unknown unit codes are displayed as given.
func NewItem(name string, qty float64, unitCode string, price float64, labels Labeler) Item {
	label := unitCode
	if u, ok := LookupUnit(unitCode); ok && labels != nil {
		label = labels.T(u.Label)
	}
	return Item{
		Name:      name,
		Quantity:  qty,
		Unit:      label,
		UnitValue: unitCode,
		Price:     price,
		Total:     lineTotal(qty, price),
	}
}

func lineTotal(qty, price float64) float64 {
	return decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}
