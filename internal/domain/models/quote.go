package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest is the validated form state a quote is computed from.
type QuoteRequest struct {
	Brand          string
	Color          Color
	Quantities     map[string]int
	DesignElements int
	ExtraColors    int
	Wholesale      bool
}

// OrderLine is one priced garment row. Only lines with a positive quantity exist.
type OrderLine struct {
	GarmentID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Quote is the full result of one calculation.
type Quote struct {
	Brand             string
	Color             Color
	Lines             []OrderLine
	DesignElements    int
	GarmentSubtotal   decimal.Decimal
	ScreenFee         decimal.Decimal
	ColorChangeFee    decimal.Decimal
	WholesaleDiscount decimal.Decimal
	Total             decimal.Decimal
	ComputedAt        time.Time
}

// GarmentCount sums the quantities across all lines, saturating at math.MaxInt.
func (q Quote) GarmentCount() int {
	var n int
	for _, l := range q.Lines {
		if l.Quantity > math.MaxInt-n {
			return math.MaxInt
		}
		n += l.Quantity
	}
	return n
}
