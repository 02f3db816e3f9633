package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

// Field names shared by form parsing and request validation.
const (
	FieldBrand          = "brand"
	FieldColor          = "color"
	FieldDesignElements = "design_elements"
	FieldExtraColors    = "extra_colors"
)

var hundred = decimal.NewFromInt(100)

// Calculate prices a request against the catalog. It has no side effects and
// leaves Quote.ComputedAt for the caller to stamp.
func Calculate(catalog models.Catalog, req models.QuoteRequest) (models.Quote, error) {
	brand, color, err := validateRequest(catalog, req)
	if err != nil {
		return models.Quote{}, err
	}

	lines := ResolveLines(brand, color, req.Quantities)
	subtotal := GarmentSubtotal(lines)
	screenFee := ScreenFee(req.DesignElements, catalog.ScreenFeePerElement)
	colorFee := ColorChangeFee(req.ExtraColors, GarmentQuantity(lines), catalog.ColorChangeFee)
	discount := WholesaleDiscount(subtotal, catalog.WholesaleDiscountPercent, req.Wholesale)

	return models.Quote{
		Brand:             brand.ID,
		Color:             color,
		Lines:             lines,
		DesignElements:    req.DesignElements,
		GarmentSubtotal:   subtotal,
		ScreenFee:         screenFee,
		ColorChangeFee:    colorFee,
		WholesaleDiscount: discount,
		Total:             subtotal.Add(screenFee).Add(colorFee).Sub(discount),
	}, nil
}

// ResolveLines prices every garment of the brand at the color's unit price and
// keeps only those with a positive quantity, in catalog order.
func ResolveLines(brand models.Brand, color models.Color, quantities map[string]int) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(quantities))
	for _, g := range brand.Garments {
		qty := quantities[g.ID]
		if qty <= 0 {
			continue
		}
		unit := g.UnitPrice(color)
		lines = append(lines, models.OrderLine{
			GarmentID: g.ID,
			Name:      g.Name,
			Quantity:  qty,
			UnitPrice: unit,
			Total:     unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return lines
}

// GarmentSubtotal sums the line totals.
func GarmentSubtotal(lines []models.OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	return sum
}

// ScreenFee is the one-time charge for burning one screen per design element.
func ScreenFee(designElements int, perElement decimal.Decimal) decimal.Decimal {
	return perElement.Mul(decimal.NewFromInt(int64(designElements)))
}

// ColorChangeFee charges perUnit for every extra ink color on every garment printed.
func ColorChangeFee(extraColors int, garments, perUnit decimal.Decimal) decimal.Decimal {
	return perUnit.Mul(decimal.NewFromInt(int64(extraColors))).Mul(garments)
}

// WholesaleDiscount takes percent off the garment subtotal, rounded to cents.
// Fees are never discounted.
func WholesaleDiscount(subtotal, percent decimal.Decimal, enabled bool) decimal.Decimal {
	if !enabled || percent.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(percent).Div(hundred).Round(2)
}

// GarmentQuantity sums the line quantities. Form input is unbounded, so the
// sum is kept in decimal.
func GarmentQuantity(lines []models.OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromInt(int64(l.Quantity)))
	}
	return sum
}

func validateRequest(catalog models.Catalog, req models.QuoteRequest) (models.Brand, models.Color, error) {
	errs := FieldErrors{}

	brand, ok := catalog.Brand(req.Brand)
	if !ok {
		errs.Add(FieldBrand, fmt.Sprintf("unknown brand %q", req.Brand))
	}

	color := req.Color
	switch color {
	case "":
		color = models.ColorLight
	case models.ColorLight, models.ColorDark:
	default:
		errs.Add(FieldColor, "must be light or dark")
	}

	if req.DesignElements < 1 {
		errs.Add(FieldDesignElements, "must be a whole number of 1 or more")
	}

	if req.ExtraColors < 0 {
		errs.Add(FieldExtraColors, "must be a whole number of 0 or more")
	}

	for id, qty := range req.Quantities {
		if ok {
			if _, known := brand.Garment(id); !known {
				errs.Add(QuantityField(id), fmt.Sprintf("%s does not carry garment %q", brand.Name, id))
				continue
			}
		}
		if qty < 0 {
			errs.Add(QuantityField(id), "must be a whole number of 0 or more")
		}
	}

	return brand, color, errs.Err()
}
