package models

import "time"

// QuoteRecord is the archived shape of a computed quote stored in MongoDB.
type QuoteRecord struct {
	Brand             string           `bson:"brand" json:"brand"`
	Color             string           `bson:"color" json:"color"`
	Channel           string           `bson:"channel" json:"channel"`
	Lines             []QuoteLineEntry `bson:"lines" json:"lines"`
	DesignElements    int              `bson:"design_elements" json:"design_elements"`
	Garments          int              `bson:"garments" json:"garments"`
	ScreenFee         float64          `bson:"screen_fee" json:"screen_fee"`
	ColorChangeFee    float64          `bson:"color_change_fee" json:"color_change_fee"`
	WholesaleDiscount float64          `bson:"wholesale_discount" json:"wholesale_discount"`
	Total             float64          `bson:"total" json:"total"`
	CreatedAt         time.Time        `bson:"created_at" json:"created_at"`
}

// QuoteLineEntry is one archived order line.
type QuoteLineEntry struct {
	GarmentID string  `bson:"garment_id" json:"garment_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
	Total     float64 `bson:"total" json:"total"`
}

// NewQuoteRecord flattens a quote for storage. Amounts lose decimal precision
// beyond float64, which is acceptable for reporting aggregates.
func NewQuoteRecord(q Quote, channel string) QuoteRecord {
	lines := make([]QuoteLineEntry, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLineEntry{
			GarmentID: l.GarmentID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.InexactFloat64(),
			Total:     l.Total.InexactFloat64(),
		})
	}

	return QuoteRecord{
		Brand:             q.Brand,
		Color:             string(q.Color),
		Channel:           channel,
		Lines:             lines,
		DesignElements:    q.DesignElements,
		Garments:          q.GarmentCount(),
		ScreenFee:         q.ScreenFee.InexactFloat64(),
		ColorChangeFee:    q.ColorChangeFee.InexactFloat64(),
		WholesaleDiscount: q.WholesaleDiscount.InexactFloat64(),
		Total:             q.Total.InexactFloat64(),
		CreatedAt:         q.ComputedAt,
	}
}
