package canonical

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a decimal in the form iyzico expects inside signed
// strings: no redundant leading or trailing zeros and always at least one
// fractional digit. 0 becomes "0.0", 10000 becomes "10000.0" and
// 0033001.0004400 becomes "33001.00044".
func FormatPrice(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
