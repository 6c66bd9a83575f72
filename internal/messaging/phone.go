// Package messaging composes supplier order messages and WhatsApp/SMS deep links.
package messaging

import (
	"net/url"
	"strings"
)

// DefaultCountryCode is the dialing prefix assumed for local numbers.
const DefaultCountryCode = "972"

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeInternational reduces phone to digits in international form:
// a leading 0 becomes the country code and bare 9-digit numbers get it prefixed.
func NormalizeInternational(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cleaned := digitsOnly(phone)
	if strings.HasPrefix(cleaned, "0") {
		cleaned = countryCode + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, countryCode) && len(cleaned) == 9 {
		cleaned = countryCode + cleaned
	}
	return cleaned
}

// NormalizeLocal reduces phone to digits in local form with a leading 0.
func NormalizeLocal(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cleaned := digitsOnly(phone)
	if strings.HasPrefix(cleaned, countryCode) {
		cleaned = "0" + cleaned[len(countryCode):]
	}
	if !strings.HasPrefix(cleaned, "0") {
		cleaned = "0" + cleaned
	}
	return cleaned
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode a URI component.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// WhatsAppLink returns a wa.me link for phone, pre-filled with text when not empty.
func WhatsAppLink(phone, countryCode, text string) string {
	link := "https://wa.me/" + NormalizeInternational(phone, countryCode)
	if text == "" {
		return link
	}
	return link + "?text=" + EncodeComponent(text)
}

// SMSLink returns an sms: link for phone, pre-filled with body when not empty.
func SMSLink(phone, countryCode, body string) string {
	link := "sms:" + NormalizeLocal(phone, countryCode)
	if body == "" {
		return link
	}
	return link + "?body=" + EncodeComponent(body)
}
