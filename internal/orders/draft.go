package orders

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mos234/vegetable-orders/internal/shared"
)

// Draft is the order being composed before it is saved.
type Draft struct {
	SupplierID    string  `json:"supplierId" validate:"required"`
	SupplierName  string  `json:"supplierName"`
	SupplierPhone string  `json:"supplierPhone"`
	OrderDate     Date    `json:"orderDate"`
	DeliveryDate  Date    `json:"deliveryDate"`
	Items         []Item  `json:"items"`
	Notes         string  `json:"notes"`
	Total         float64 `json:"total"`
	Status        Status  `json:"status" validate:"omitempty,oneof=draft sent delivered cancelled"`
}

// PositiveItems returns the items with a quantity above zero.
func (d Draft) PositiveItems() []Item {
	out := make([]Item, 0, len(d.Items))
	for _, it := range d.Items {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// ComputeTotal sums the totals of the positive items.
func (d Draft) ComputeTotal() float64 {
	sum := decimal.Zero
	for _, it := range d.PositiveItems() {
		sum = sum.Add(decimal.NewFromFloat(it.Total))
	}
	return sum.InexactFloat64()
}

// Complete fills in what a form would derive: line totals, unit labels,
// the item list restricted to positive quantities and, when zero, the order total.
func (d Draft) Complete(labels Labeler) Draft {
	items := d.PositiveItems()
	for i, it := range items {
		if it.Total == 0 {
			items[i].Total = lineTotal(it.Quantity, it.Price)
		}
		if it.Unit == "" {
			items[i].Unit = NewItem(it.Name, it.Quantity, it.UnitValue, it.Price, labels).Unit
		}
	}
	d.Items = items
	if d.Total == 0 {
		d.Total = d.ComputeTotal()
	}
	return d
}

func (d Draft) validate() (Draft, error) {
	d.SupplierID = strings.TrimSpace(d.SupplierID)
	d.Notes = strings.TrimSpace(d.Notes)
	if err := shared.Validate(d); err != nil {
		return Draft{}, err
	}
	if err := checkDates(d.OrderDate, d.DeliveryDate); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func checkDates(orderDate, deliveryDate Date) error {
	fields := map[string]string{}
	if !orderDate.Valid() {
		fields["orderDate"] = "must be a date (YYYY-MM-DD)"
	}
	if !deliveryDate.Valid() {
		fields["deliveryDate"] = "must be a date (YYYY-MM-DD)"
	}
	if len(fields) > 0 {
		return &shared.ValidationError{Fields: fields}
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	SupplierID    *string  `json:"supplierId,omitempty"`
	SupplierName  *string  `json:"supplierName,omitempty"`
	SupplierPhone *string  `json:"supplierPhone,omitempty"`
	OrderDate     *Date    `json:"orderDate,omitempty"`
	DeliveryDate  *Date    `json:"deliveryDate,omitempty"`
	Items         *[]Item  `json:"items,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Total         *float64 `json:"total,omitempty"`
	Status        *Status  `json:"status,omitempty"`
}

func (p Patch) validate() error {
	fields := map[string]string{}
	if p.SupplierID != nil && strings.TrimSpace(*p.SupplierID) == "" {
		fields["supplierId"] = "is required"
	}
	if p.Status != nil && !p.Status.Valid() {
		fields["status"] = "must be one of draft sent delivered cancelled"
	}
	if p.OrderDate != nil && !p.OrderDate.Valid() {
		fields["orderDate"] = "must be a date (YYYY-MM-DD)"
	}
	if p.DeliveryDate != nil && !p.DeliveryDate.Valid() {
		fields["deliveryDate"] = "must be a date (YYYY-MM-DD)"
	}
	if len(fields) > 0 {
		return &shared.ValidationError{Fields: fields}
	}
	return nil
}

func (p Patch) apply(o *Order) {
	if p.SupplierID != nil {
		o.SupplierID = strings.TrimSpace(*p.SupplierID)
	}
	if p.SupplierName != nil {
		o.SupplierName = *p.SupplierName
	}
	if p.SupplierPhone != nil {
		o.SupplierPhone = *p.SupplierPhone
	}
	if p.OrderDate != nil {
		o.OrderDate = *p.OrderDate
	}
	if p.DeliveryDate != nil {
		o.DeliveryDate = *p.DeliveryDate
	}
	if p.Items != nil {
		o.Items = append([]Item{}, (*p.Items)...)
	}
	if p.Notes != nil {
		o.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
}
