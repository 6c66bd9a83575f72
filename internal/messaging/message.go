package messaging

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mos234/vegetable-orders/internal/i18n"
	"github.com/mos234/vegetable-orders/internal/orders"
)

// Builder renders order messages in one locale.
type Builder struct {
	labels      i18n.Localizer
	currency    string
	countryCode string
}

// NewBuilder returns a Builder; empty currency and country code fall back to ₪ and 972.
func NewBuilder(labels i18n.Localizer, currency, countryCode string) *Builder {
	if currency == "" {
		currency = "₪"
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Builder{labels: labels, currency: currency, countryCode: countryCode}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OrderMessage renders the full message sent to the supplier of o.
func (b *Builder) OrderMessage(o orders.Order) string {
	l := b.labels
	var sb strings.Builder
	sb.WriteString(l.T("Hello %s,", o.SupplierName) + "\n\n")
	sb.WriteString(l.T("Order %s", o.OrderNumber) + "\n")
	sb.WriteString(l.T("Delivery date: %s", o.DeliveryDate.Display()) + "\n\n")
	sb.WriteString(l.T("Items:") + "\n")
	for i, item := range o.Items {
		sb.WriteString(strconv.Itoa(i+1) + ". " + item.Name + " - " + number(item.Quantity) + " " + item.Unit)
		if item.Price > 0 {
			sb.WriteString(l.T(" (%s%s per unit)", b.currency, number(item.Price)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + l.T("Total: %s%s", b.currency, decimal.NewFromFloat(o.Total).StringFixed(2)))
	if o.Notes != "" {
		sb.WriteString("\n\n" + l.T("Notes: %s", o.Notes))
	}
	sb.WriteString("\n\n" + l.T("Thank you very much!"))
	return sb.String()
}

// QuickWhatsApp renders the short multi-line request used when chatting
// with a supplier outside of a saved order.
func (b *Builder) QuickWhatsApp(supplierName string, items []orders.Item) string {
	l := b.labels
	var sb strings.Builder
	sb.WriteString(l.T("Hello %s,", supplierName) + "\n\n")
	sb.WriteString(l.T("I would like to order:") + "\n")
	if len(items) == 0 {
		sb.WriteString(l.T("[order details]") + "\n")
	}
	for _, item := range items {
		sb.WriteString("- " + item.Name + ": " + number(item.Quantity) + " " + item.Unit + "\n")
	}
	sb.WriteString("\n" + l.T("Thank you very much!"))
	return sb.String()
}

// QuickSMS renders the single-line variant of QuickWhatsApp.
func (b *Builder) QuickSMS(supplierName string, items []orders.Item) string {
	l := b.labels
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Name+" "+number(item.Quantity)+item.Unit)
	}
	list := strings.Join(parts, ", ")
	if len(items) == 0 {
		list = l.T("[order details]")
	}
	return l.T("Hello %s,", supplierName) + " " + l.T("I would like to order:") + " " + list + ". " + l.T("Thank you!")
}

// Links bundles a message with its deep links.
type Links struct {
	Text     string `json:"text"`
	WhatsApp string `json:"whatsapp"`
	SMS      string `json:"sms"`
}

// ForOrder renders the message of o with links to its supplier phone.
func (b *Builder) ForOrder(o orders.Order) Links {
	text := b.OrderMessage(o)
	return Links{
		Text:     text,
		WhatsApp: WhatsAppLink(o.SupplierPhone, b.countryCode, text),
		SMS:      SMSLink(o.SupplierPhone, b.countryCode, text),
	}
}
