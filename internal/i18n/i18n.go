// Package i18n holds display strings for messages, reports and exports.
// Keys are the English texts; Hebrew is the product's primary locale.
package i18n

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "he"

var hebrew = map[string]string{
	// order message
	"Hello %s,":              "שלום %s,",
	"Order %s":               "הזמנה %s",
	"Delivery date: %s":      "תאריך אספקה: %s",
	"Items:":                 "פריטים:",
	" (%s%s per unit)":       " (%s%s ליחידה)",
	"Total: %s%s":            "סה\"כ: %s%s",
	"Notes: %s":              "הערות: %s",
	"Thank you very much!":   "תודה רבה!",
	"Thank you!":             "תודה!",
	"[order details]":        "[פרטי ההזמנה]",
	"I would like to order:": "אני רוצה להזמין:",

	// statuses
	"Draft":     "טיוטה",
	"Sent":      "נשלח",
	"Delivered": "סופק",
	"Cancelled": "בוטל",

	// units
	"kg":    "ק\"ג",
	"Unit":  "יחידה",
	"Box":   "ארגז",
	"Bunch": "צרור",
	"Bag":   "שקית",

	// months
	"January":   "ינואר",
	"February":  "פברואר",
	"March":     "מרץ",
	"April":     "אפריל",
	"May":       "מאי",
	"June":      "יוני",
	"July":      "יולי",
	"August":    "אוגוסט",
	"September": "ספטמבר",
	"October":   "אוקטובר",
	"November":  "נובמבר",
	"December":  "דצמבר",

	// summary sheet
	"Monthly Report - Vegetable Orders Management": "דו\"ח חודשי - ניהול הזמנות ירקות",
	"Month:":                "חודש:",
	"General Summary":       "סיכום כללי",
	"Total orders:":         "סה\"כ הזמנות:",
	"Total expenses:":       "סה\"כ הוצאות:",
	"Average per order:":    "ממוצע להזמנה:",
	"Active suppliers:":     "ספקים פעילים:",
	"Breakdown by Supplier": "פירוט לפי ספק",
	"Supplier Name":         "שם ספק",
	"Total":                 "סה\"כ",
	"%s%s (%d orders)":      "%s%s (%d הזמנות)",
	"Generated on:":         "נוצר בתאריך:",
	"Unknown supplier":      "ספק לא ידוע",

	// detail sheet and list exports
	"Order No.":     "מס' הזמנה",
	"Supplier":      "ספק",
	"Order Date":    "תאריך הזמנה",
	"Delivery Date": "תאריך אספקה",
	"Item":          "פריט",
	"Quantity":      "כמות",
	"Price":         "מחיר",
	"Line Total":    "סה\"כ שורה",
	"Status":        "סטטוס",
	"Order total:":  "סה\"כ הזמנה:",
	"Grand total:":  "סה\"כ כללי:",
	"(no items)":    "(אין פריטים)",
	"Phone":         "טלפון",
	"Items":         "פריטים",
	"Notes":         "הערות",
	"Date Added":    "תאריך הוספה",
}

var cat = build()

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range hebrew {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Hebrew, key, text)
	}
	return b
}

// Localizer formats display strings for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for locale ("he", "en", "he-IL", ...). Unknown or
// unsupported locales fall back to English.
func New(locale string) Localizer {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		if base, _ := parsed.Base(); base.String() == "he" {
			tag = language.Hebrew
		}
	}
	return Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag reports the resolved language.
func (l Localizer) Tag() language.Tag { return l.tag }

// Printer exposes the underlying x/text printer.
func (l Localizer) Printer() *message.Printer {
	if l.printer == nil {
		return New("").printer
	}
	return l.printer
}

// T translates key and formats it with args.
func (l Localizer) T(key string, args ...any) string {
	if l.printer == nil {
		return New("").T(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

var monthKeys = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the localized name of m; out-of-range months yield "".
func (l Localizer) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.T(monthKeys[m-1])
}

// DisplayDate renders t as DD/MM/YYYY, or "-" for the zero time.
func DisplayDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
