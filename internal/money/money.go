// Package money converts between amounts in cents and their textual forms.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse reads an amount written either in Brazilian notation ("1.234,56",
// "-588,74", "R$ 10,00") or with a dot decimal separator ("1234.56") and
// returns it in cents.
func Parse(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")

	if clean == "" {
		return 0, fmt.Errorf("parse amount: empty value")
	}

	switch {
	case strings.Contains(clean, ","):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case strings.Count(clean, ".") > 1 || hasThousandsDot(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}

// hasThousandsDot reports whether a single dot is followed by exactly three
// digits, as in "1.234".
func hasThousandsDot(s string) bool {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return false
	}

	return len(s)-i-1 == 3
}

// Format renders cents as "R$ 1.234,56".
func Format(cents int64) string {
	return "R$ " + FormatPlain(cents)
}

// FormatPlain renders cents as "1.234,56" without the currency symbol.
func FormatPlain(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	intPart := groupThousands(fmt.Sprintf("%d", cents/100))
	out := fmt.Sprintf("%s,%02d", intPart, cents%100)

	if neg {
		return "-" + out
	}

	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder

	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}

	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}

// ToFloat converts cents to currency units for charting.
func ToFloat(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
