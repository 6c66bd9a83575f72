package orders

import (
	"encoding/json"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day. It is stored as
// YYYY-MM-DD; values that cannot be parsed are kept verbatim so a stored
// collection survives a read-modify-write cycle unchanged.
type Date struct {
	t   time.Time
	raw string
}

// NewDate returns the calendar date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp, the latter being
// converted to local time before the date is taken. An empty string
// yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t.Local()), nil
}

// IsZero reports whether d holds no date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns local midnight of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// String renders YYYY-MM-DD, or the unparsed input, or "" for the zero Date.
func (d Date) String() string {
	if d.t.IsZero() {
		return d.raw
	}
	return d.t.Format(dateLayout)
}

// Display renders DD/MM/YYYY, or "-" when there is no date.
func (d Date) Display() string {
	if d.t.IsZero() {
		return "-"
	}
	return d.t.Format("02/01/2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		*d = Date{raw: *s}
		return nil
	}
	*d = parsed
	return nil
}

// Valid reports whether d is either empty or a parsed date.
func (d Date) Valid() bool { return d.raw == "" }
