package orders

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstOrderNumber is assigned when no previous number can be derived.
const FirstOrderNumber = 1001

// Numbering selects how order numbers are assigned.
type Numbering string

const (
	// NumberingLast derives the next number from the last stored order.
	// Deleting that order makes its number available again.
	NumberingLast Numbering = "last"
	// NumberingSequence keeps a persistent counter and never reuses numbers.
	NumberingSequence Numbering = "sequence"
)

// ParseNumbering validates a configured policy name; "" selects NumberingLast.
func ParseNumbering(s string) (Numbering, error) {
	switch Numbering(strings.ToLower(strings.TrimSpace(s))) {
	case "", NumberingLast:
		return NumberingLast, nil
	case NumberingSequence:
		return NumberingSequence, nil
	}
	return "", fmt.Errorf("orders: unknown numbering policy %q", s)
}

// FormatOrderNumber renders n as "#n".
func FormatOrderNumber(n int64) string {
	return "#" + strconv.FormatInt(n, 10)
}

// ParseOrderNumber drops the first "#" and reads a leading integer,
// ignoring any trailing characters.
func ParseOrderNumber(s string) (int64, bool) {
	s = strings.TrimLeft(strings.Replace(s, "#", "", 1), " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lastNumber(all []Order) (int64, bool) {
	if len(all) == 0 {
		return 0, false
	}
	return ParseOrderNumber(all[len(all)-1].OrderNumber)
}

// nextFromLast returns the number following the last order, or FirstOrderNumber.
func nextFromLast(all []Order) int64 {
	if n, ok := lastNumber(all); ok {
		return n + 1
	}
	return FirstOrderNumber
}

// nextFromSequence advances counter past the last order, never below FirstOrderNumber.
func nextFromSequence(counter int64, all []Order) int64 {
	base := counter
	if n, ok := lastNumber(all); ok && n > base {
		base = n
	}
	next := base + 1
	if next < FirstOrderNumber {
		next = FirstOrderNumber
	}
	return next
}
