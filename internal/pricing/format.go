package pricing

import "github.com/shopspring/decimal"

// FormatAmount renders a money amount with two decimal places, e.g. "$106.00".
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
