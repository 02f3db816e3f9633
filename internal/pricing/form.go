package pricing

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

// DefaultDesignElements is used when the design element field is left blank,
// which charges a single screen.
const DefaultDesignElements = 1

var wholeNumber = regexp.MustCompile(`^\d+$`)

var (
	errQuantity       = errors.New("must be a whole number of 0 or more")
	errDesignElements = errors.New("must be a whole number of 1 or more")
)

// QuantityField names the form field holding the quantity for a garment.
func QuantityField(garmentID string) string {
	return "qty_" + garmentID
}

// ParseQuantity reads a quantity field. Blank means zero.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if !wholeNumber.MatchString(raw) {
		return 0, errQuantity
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errQuantity
	}
	return n, nil
}

// ParseDesignElements reads the design element count. Blank falls back to
// DefaultDesignElements; zero, negative and non-numeric input are rejected.
func ParseDesignElements(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDesignElements, nil
	}
	if !wholeNumber.MatchString(raw) {
		return 0, errDesignElements
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errDesignElements
	}
	return n, nil
}

// FromForm builds a request for brand out of submitted form values. Every
// invalid field is reported, not just the first.
func FromForm(brand models.Brand, color models.Color, get func(key string) string) (models.QuoteRequest, error) {
	errs := FieldErrors{}
	req := models.QuoteRequest{
		Brand:      brand.ID,
		Color:      color,
		Quantities: make(map[string]int, len(brand.Garments)),
	}

	for _, g := range brand.Garments {
		field := QuantityField(g.ID)
		qty, err := ParseQuantity(get(field))
		if err != nil {
			errs.Add(field, err.Error())
			continue
		}
		req.Quantities[g.ID] = qty
	}

	elements, err := ParseDesignElements(get(FieldDesignElements))
	if err != nil {
		errs.Add(FieldDesignElements, err.Error())
	}
	req.DesignElements = elements

	extra, err := ParseQuantity(get(FieldExtraColors))
	if err != nil {
		errs.Add(FieldExtraColors, err.Error())
	}
	req.ExtraColors = extra

	switch strings.ToLower(strings.TrimSpace(get("wholesale"))) {
	case "on", "true", "1", "yes":
		req.Wholesale = true
	}

	return req, errs.Err()
}
