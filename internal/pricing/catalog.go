package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// garment IDs double as form field suffixes and chat command keys.
var garmentIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type catalogFile struct {
	Currency                 string      `yaml:"currency" validate:"required,len=3"`
	DefaultBrand             string      `yaml:"default_brand" validate:"required"`
	ScreenFeePerElement      float64     `yaml:"screen_fee_per_element" validate:"gt=0"`
	ColorChangeFee           float64     `yaml:"color_change_fee" validate:"gte=0"`
	WholesaleDiscountPercent float64     `yaml:"wholesale_discount_percent" validate:"gte=0,lte=100"`
	Brands                   []brandFile `yaml:"brands" validate:"required,min=1,dive"`
}

type brandFile struct {
	ID       string        `yaml:"id" validate:"required"`
	Name     string        `yaml:"name" validate:"required"`
	Garments []garmentFile `yaml:"garments" validate:"required,min=1,dive"`
}

type garmentFile struct {
	ID       string  `yaml:"id" validate:"required"`
	Name     string  `yaml:"name" validate:"required"`
	Category string  `yaml:"category"`
	Light    float64 `yaml:"light" validate:"gte=0"`
	Dark     float64 `yaml:"dark" validate:"gte=0"`
}

var catalogValidator = validator.New(validator.WithRequiredStructEnabled())

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (models.Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a YAML catalog from disk. An empty path yields the built-in catalog.
func LoadCatalog(path string) (models.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	catalog, err := ParseCatalog(raw)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(raw []byte) (models.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return models.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	if err := catalogValidator.Struct(file); err != nil {
		return models.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}

	catalog := models.Catalog{
		Currency:                 file.Currency,
		DefaultBrand:             file.DefaultBrand,
		ScreenFeePerElement:      decimal.NewFromFloat(file.ScreenFeePerElement),
		ColorChangeFee:           decimal.NewFromFloat(file.ColorChangeFee),
		WholesaleDiscountPercent: decimal.NewFromFloat(file.WholesaleDiscountPercent),
		Brands:                   make([]models.Brand, 0, len(file.Brands)),
	}

	brandIDs := make(map[string]struct{}, len(file.Brands))
	for _, b := range file.Brands {
		if _, dup := brandIDs[b.ID]; dup {
			return models.Catalog{}, fmt.Errorf("invalid catalog: duplicate brand %q", b.ID)
		}
		brandIDs[b.ID] = struct{}{}

		brand := models.Brand{ID: b.ID, Name: b.Name, Garments: make([]models.GarmentType, 0, len(b.Garments))}
		garmentIDs := make(map[string]struct{}, len(b.Garments))
		for _, g := range b.Garments {
			if !garmentIDPattern.MatchString(g.ID) {
				return models.Catalog{}, fmt.Errorf("invalid catalog: brand %q: garment id %q must be lowercase letters, digits or dashes", b.ID, g.ID)
			}
			if _, dup := garmentIDs[g.ID]; dup {
				return models.Catalog{}, fmt.Errorf("invalid catalog: brand %q: duplicate garment %q", b.ID, g.ID)
			}
			garmentIDs[g.ID] = struct{}{}

			category := g.Category
			if category == "" {
				category = g.ID
			}
			brand.Garments = append(brand.Garments, models.GarmentType{
				ID:         g.ID,
				Name:       g.Name,
				Category:   category,
				LightPrice: decimal.NewFromFloat(g.Light),
				DarkPrice:  decimal.NewFromFloat(g.Dark),
			})
		}
		catalog.Brands = append(catalog.Brands, brand)
	}

	if _, ok := brandIDs[file.DefaultBrand]; !ok {
		return models.Catalog{}, errors.New("invalid catalog: default_brand does not name a brand")
	}

	return catalog, nil
}
