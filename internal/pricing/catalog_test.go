package pricing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := mustCatalog(t)

	assert.Equal(t, "USD", c.Currency)
	assert.Equal(t, "hanes", c.DefaultBrand)
	assertAmount(t, "10", c.ScreenFeePerElement)
	require.Len(t, c.Brands, 4)

	hanes, ok := c.Brand("")
	require.True(t, ok)
	require.Len(t, hanes.Garments, 4)
	assert.Equal(t, []string{"T-Shirt", "Crewneck", "Hoodie", "Long Sleeve"},
		[]string{hanes.Garments[0].Name, hanes.Garments[1].Name, hanes.Garments[2].Name, hanes.Garments[3].Name})

	independent, ok := c.Brand("independent")
	require.True(t, ok)
	var hoodies int
	for _, g := range independent.Garments {
		if g.Category == "hoodie" {
			hoodies++
		}
	}
	assert.Equal(t, 3, hoodies)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "house", c.DefaultBrand)
	assertAmount(t, "12.5", c.ScreenFeePerElement)
	assert.True(t, c.ColorChangeFee.IsZero())
	assert.Equal(t, "tee", c.Brands[0].Garments[0].Category)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func TestParseCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"not yaml": "currency: [",
		"no brands": `
currency: USD
default_brand: x
screen_fee_per_element: 10
`,
		"unknown default": `
currency: USD
default_brand: other
screen_fee_per_element: 10
brands:
  - {id: x, name: X, garments: [{id: tee, name: Tee, light: 1, dark: 2}]}
`,
		"duplicate garment": `
currency: USD
default_brand: x
screen_fee_per_element: 10
brands:
  - {id: x, name: X, garments: [{id: tee, name: Tee, light: 1, dark: 2}, {id: tee, name: Tee 2, light: 1, dark: 2}]}
`,
		"bad garment id": `
currency: USD
default_brand: x
screen_fee_per_element: 10
brands:
  - {id: x, name: X, garments: [{id: "Tee Shirt", name: Tee, light: 1, dark: 2}]}
`,
		"negative price": `
currency: USD
default_brand: x
screen_fee_per_element: 10
brands:
  - {id: x, name: X, garments: [{id: tee, name: Tee, light: -1, dark: 2}]}
`,
		"discount over 100": `
currency: USD
default_brand: x
screen_fee_per_element: 10
wholesale_discount_percent: 150
brands:
  - {id: x, name: X, garments: [{id: tee, name: Tee, light: 1, dark: 2}]}
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}
