package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Color is the garment color family selected on the form. Dark garments need a
// white-ink underbase and are priced higher.
type Color string

const (
	ColorLight Color = "light"
	ColorDark  Color = "dark"
)

// ParseColor accepts "light" or "dark" in any case. Blank input selects light.
func ParseColor(value string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ColorLight):
		return ColorLight, nil
	case string(ColorDark):
		return ColorDark, nil
	default:
		return "", fmt.Errorf("unknown garment color %q", value)
	}
}

// GarmentType is one catalog entry with its light and dark unit prices.
type GarmentType struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	LightPrice decimal.Decimal `json:"light_price"`
	DarkPrice  decimal.Decimal `json:"dark_price"`
}

// UnitPrice resolves the price charged per garment for the given color.
func (g GarmentType) UnitPrice(color Color) decimal.Decimal {
	if color == ColorDark {
		return g.DarkPrice
	}
	return g.LightPrice
}

// Brand groups the garment types offered by one blank supplier, in display order.
type Brand struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Garments []GarmentType `json:"garments"`
}

// Garment looks up a garment type by ID.
func (b Brand) Garment(id string) (GarmentType, bool) {
	for _, g := range b.Garments {
		if g.ID == id {
			return g, true
		}
	}
	return GarmentType{}, false
}

// Catalog is the static pricing configuration. It is never mutated after load.
type Catalog struct {
	Currency                 string          `json:"currency"`
	DefaultBrand             string          `json:"default_brand"`
	ScreenFeePerElement      decimal.Decimal `json:"screen_fee_per_element"`
	ColorChangeFee           decimal.Decimal `json:"color_change_fee"`
	WholesaleDiscountPercent decimal.Decimal `json:"wholesale_discount_percent"`
	Brands                   []Brand         `json:"brands"`
}

// Brand returns the brand with the given ID; a blank ID selects the default brand.
func (c Catalog) Brand(id string) (Brand, bool) {
	if id == "" {
		id = c.DefaultBrand
	}
	for _, b := range c.Brands {
		if strings.EqualFold(b.ID, id) {
			return b, true
		}
	}
	return Brand{}, false
}
