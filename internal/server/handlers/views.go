package handlers

import (
	"embed"
	"html/template"
	"time"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML templates for the gin engine.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type fieldView struct {
	Field string
	Name  string
	Value string
	Error string
}

type lineView struct {
	Quantity  int
	Name      string
	UnitPrice string
	Total     string
}

type quoteView struct {
	Lines             []lineView
	ScreenFee         string
	ColorChangeFee    string
	WholesaleDiscount string
	Total             string
}

type pageView struct {
	Brands         []models.Brand
	BrandID        string
	Color          string
	Garments       []fieldView
	DesignElements fieldView
	ExtraColors    fieldView
	Wholesale      bool
	Quote          *quoteView
}

func newPageView(catalog models.Catalog, brand models.Brand, color models.Color, inputs map[string]string, errs pricing.FieldErrors, quote *models.Quote) pageView {
	field := func(name, label string) fieldView {
		return fieldView{Field: name, Name: label, Value: inputs[name], Error: errs[name]}
	}

	view := pageView{
		Brands:         catalog.Brands,
		BrandID:        brand.ID,
		Color:          string(color),
		DesignElements: field(pricing.FieldDesignElements, "Number of Design Elements"),
		ExtraColors:    field(pricing.FieldExtraColors, "Extra ink colors"),
		Wholesale:      inputs["wholesale"] != "",
	}
	if view.DesignElements.Value == "" && view.DesignElements.Error == "" {
		view.DesignElements.Value = "1"
	}

	for _, g := range brand.Garments {
		view.Garments = append(view.Garments, field(pricing.QuantityField(g.ID), g.Name))
	}

	if quote != nil {
		view.Quote = newQuoteView(*quote)
	}
	return view
}

func newQuoteView(q models.Quote) *quoteView {
	view := &quoteView{
		ScreenFee: pricing.FormatAmount(q.ScreenFee),
		Total:     pricing.FormatAmount(q.Total),
	}
	if !q.ColorChangeFee.IsZero() {
		view.ColorChangeFee = pricing.FormatAmount(q.ColorChangeFee)
	}
	if !q.WholesaleDiscount.IsZero() {
		view.WholesaleDiscount = pricing.FormatAmount(q.WholesaleDiscount.Neg())
	}
	for _, l := range q.Lines {
		view.Lines = append(view.Lines, lineView{
			Quantity:  l.Quantity,
			Name:      l.Name,
			UnitPrice: pricing.FormatAmount(l.UnitPrice),
			Total:     pricing.FormatAmount(l.Total),
		})
	}
	return view
}

type lineResponse struct {
	GarmentID string `json:"garment_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type quoteResponse struct {
	Brand             string         `json:"brand"`
	Color             string         `json:"color"`
	Currency          string         `json:"currency"`
	Lines             []lineResponse `json:"lines"`
	DesignElements    int            `json:"design_elements"`
	GarmentSubtotal   string         `json:"garment_subtotal"`
	ScreenFee         string         `json:"screen_fee"`
	ColorChangeFee    string         `json:"color_change_fee"`
	WholesaleDiscount string         `json:"wholesale_discount"`
	Total             string         `json:"total"`
	ComputedAt        time.Time      `json:"computed_at"`
}

func newQuoteResponse(q models.Quote, currency string) quoteResponse {
	lines := make([]lineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, lineResponse{
			GarmentID: l.GarmentID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Total:     l.Total.StringFixed(2),
		})
	}

	return quoteResponse{
		Brand:             q.Brand,
		Color:             string(q.Color),
		Currency:          currency,
		Lines:             lines,
		DesignElements:    q.DesignElements,
		GarmentSubtotal:   q.GarmentSubtotal.StringFixed(2),
		ScreenFee:         q.ScreenFee.StringFixed(2),
		ColorChangeFee:    q.ColorChangeFee.StringFixed(2),
		WholesaleDiscount: q.WholesaleDiscount.StringFixed(2),
		Total:             q.Total.StringFixed(2),
		ComputedAt:        q.ComputedAt,
	}
}

type garmentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	LightPrice string `json:"light_price"`
	DarkPrice  string `json:"dark_price"`
}

type brandResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Garments []garmentResponse `json:"garments"`
}

type catalogResponse struct {
	Currency                 string          `json:"currency"`
	DefaultBrand             string          `json:"default_brand"`
	ScreenFeePerElement      string          `json:"screen_fee_per_element"`
	ColorChangeFee           string          `json:"color_change_fee"`
	WholesaleDiscountPercent string          `json:"wholesale_discount_percent"`
	Brands                   []brandResponse `json:"brands"`
}

func newCatalogResponse(c models.Catalog) catalogResponse {
	resp := catalogResponse{
		Currency:                 c.Currency,
		DefaultBrand:             c.DefaultBrand,
		ScreenFeePerElement:      c.ScreenFeePerElement.StringFixed(2),
		ColorChangeFee:           c.ColorChangeFee.StringFixed(2),
		WholesaleDiscountPercent: c.WholesaleDiscountPercent.String(),
		Brands:                   make([]brandResponse, 0, len(c.Brands)),
	}
	for _, b := range c.Brands {
		br := brandResponse{ID: b.ID, Name: b.Name, Garments: make([]garmentResponse, 0, len(b.Garments))}
		for _, g := range b.Garments {
			br.Garments = append(br.Garments, garmentResponse{
				ID:         g.ID,
				Name:       g.Name,
				Category:   g.Category,
				LightPrice: g.LightPrice.StringFixed(2),
				DarkPrice:  g.DarkPrice.StringFixed(2),
			})
		}
		resp.Brands = append(resp.Brands, br)
	}
	return resp
}
