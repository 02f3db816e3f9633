package quoting

import (
	"fmt"
	"strings"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
)

// FormatText renders a quote as plain text for chat replies.
func FormatText(q models.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Screen-print estimate (%s, %s garments)\n", q.Brand, q.Color)
	if len(q.Lines) == 0 {
		b.WriteString("No garments selected.\n")
	}
	for _, l := range q.Lines {
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", l.Quantity, l.Name, pricing.FormatAmount(l.UnitPrice), pricing.FormatAmount(l.Total))
	}

	fmt.Fprintf(&b, "Screen fee (%d design elements): %s\n", q.DesignElements, pricing.FormatAmount(q.ScreenFee))
	if !q.ColorChangeFee.IsZero() {
		fmt.Fprintf(&b, "Color changes: %s\n", pricing.FormatAmount(q.ColorChangeFee))
	}
	if !q.WholesaleDiscount.IsZero() {
		fmt.Fprintf(&b, "Wholesale discount: %s\n", pricing.FormatAmount(q.WholesaleDiscount.Neg()))
	}
	fmt.Fprintf(&b, "Total: %s", pricing.FormatAmount(q.Total))

	return b.String()
}
