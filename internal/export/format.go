package export

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRFloat formats a float using Brazilian conventions: dot as
// thousands separator and comma as decimal separator. When the fractional
// part is zero after rounding, the decimal part is omitted.
// Example: 1234.5 (2 decimals) => "1.234,50"; 1000.0 => "1.000".
func FormatBRFloat(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	d := decimal.NewFromFloat(v).Round(int32(decimals))
	prefix := ""
	if d.IsNegative() {
		prefix = "-"
		d = d.Abs()
	}

	intPart, fracPart, _ := strings.Cut(d.StringFixed(int32(decimals)), ".")
	s := prefix + groupThousands(intPart)
	if strings.Trim(fracPart, "0") == "" {
		return s
	}
	return s + "," + fracPart
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	out = append(out, s[:head]...)
	for i := head; i < len(s); i += 3 {
		out = append(out, '.')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
