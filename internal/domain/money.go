package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every display price.
const CurrencySuffix = "р."

var ErrInvalidPrice = errors.New("price contains no digits")

// FormatPrice renders whole rubles the way the storefront shows them, e.g. 3000 -> "3 000 р.".
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.WriteString(sign)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	b.WriteByte(' ')
	b.WriteString(CurrencySuffix)
	return b.String()
}

// ParseDisplayPrice extracts the numeric value of a display price string.
// Everything except digits and the decimal separator is stripped. A '.' or ','
// followed by exactly three digits groups thousands ("1,500 р.", "1.500.000");
// otherwise the first one after a digit is the decimal separator. A separator
// with no digits after it (the dot in "р.") is ignored.
func ParseDisplayPrice(s string) (decimal.Decimal, error) {
	runes := []rune(s)
	var b strings.Builder
	seenSeparator := false
	for i, r := range runes {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case (r == '.' || r == ',') && !seenSeparator && b.Len() > 0:
			if digitRun(runes[i+1:]) == 3 {
				continue
			}
			seenSeparator = true
			b.WriteByte('.')
		}
	}

	cleaned := strings.TrimSuffix(b.String(), ".")
	if cleaned == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	return decimal.NewFromString(cleaned)
}

// digitRun counts the ASCII digits at the start of rs.
func digitRun(rs []rune) int {
	n := 0
	for n < len(rs) && rs[n] >= '0' && rs[n] <= '9' {
		n++
	}
	return n
}

// SamePrice reports whether a display string carries the same amount as the numeric price.
func SamePrice(display string, amount int64) bool {
	parsed, err := ParseDisplayPrice(display)
	if err != nil {
		return false
	}
	return parsed.Equal(decimal.NewFromInt(amount))
}
