package articles

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses a price or quantity as found in supplier and platform
// CSV files. Both "1.99" and "1,99" are accepted; empty input is zero.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// FormatDecimal renders d the way the export writes it.
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}
