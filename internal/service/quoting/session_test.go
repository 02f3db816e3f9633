package quoting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

func TestSession_InitialState(t *testing.T) {
	sm := NewSessionManager()

	state := sm.Get("a")
	assert.False(t, state.HasQuote())
	assert.Equal(t, models.ColorLight, state.Color)
	assert.Equal(t, 1, sm.Len())
}

func TestSession_ColorChangeDiscardsQuote(t *testing.T) {
	sm := NewSessionManager()
	sm.StoreQuote("a", sm.Get("a"), models.Quote{Brand: "hanes"}, map[string]string{"qty_tshirt": "10"})
	assert.True(t, sm.Get("a").HasQuote())

	assert.False(t, sm.SetColor("a", models.ColorLight), "same color keeps the quote")
	assert.True(t, sm.Get("a").HasQuote())

	assert.True(t, sm.SetColor("a", models.ColorDark))
	state := sm.Get("a")
	assert.False(t, state.HasQuote())
	assert.Equal(t, models.ColorDark, state.Color)

	assert.False(t, sm.SetColor("a", models.ColorLight), "nothing left to discard")
	assert.Equal(t, "10", sm.Get("a").Inputs["qty_tshirt"], "inputs survive a color change")
}

func TestSession_StoreInputsLeavesNoQuote(t *testing.T) {
	sm := NewSessionManager()
	sm.StoreQuote("a", sm.Get("a"), models.Quote{}, nil)

	sm.StoreInputs("a", map[string]string{"design_elements": "0"})
	state := sm.Get("a")
	assert.False(t, state.HasQuote())
	assert.Equal(t, "0", state.Inputs["design_elements"])
}

func TestSession_BrandChangeDiscardsQuote(t *testing.T) {
	sm := NewSessionManager()
	sm.StoreQuote("a", sm.Get("a"), models.Quote{}, nil)

	assert.True(t, sm.SetBrand("a", "gildan"))
	assert.False(t, sm.Get("a").HasQuote())
	assert.Equal(t, "gildan", sm.Get("a").Brand)
}

func TestSession_IsolatedPerID(t *testing.T) {
	sm := NewSessionManager()
	sm.StoreQuote("a", sm.Get("a"), models.Quote{}, nil)
	sm.SetColor("b", models.ColorDark)

	assert.True(t, sm.Get("a").HasQuote())
	assert.Equal(t, models.ColorLight, sm.Get("a").Color)
	assert.False(t, sm.Get("b").HasQuote())
}

func TestSession_StoreQuoteDropsQuotePricedForOldColor(t *testing.T) {
	sm := NewSessionManager()
	basis := sm.Get("a")

	// Another tab toggles the color while the quote is being priced.
	sm.SetColor("a", models.ColorDark)

	stored := sm.StoreQuote("a", basis, models.Quote{Color: models.ColorLight}, map[string]string{"qty_tshirt": "10"})
	assert.False(t, stored)

	state := sm.Get("a")
	assert.False(t, state.HasQuote())
	assert.Equal(t, models.ColorDark, state.Color)
	assert.Equal(t, "10", state.Inputs["qty_tshirt"])

	assert.True(t, sm.StoreQuote("a", state, models.Quote{Color: models.ColorDark}, nil))
	assert.True(t, sm.Get("a").HasQuote())
}

func TestSession_StoreQuoteDropsQuotePricedForOldBrand(t *testing.T) {
	sm := NewSessionManager()
	basis := sm.Get("a")
	sm.SetBrand("a", "gildan")

	assert.False(t, sm.StoreQuote("a", basis, models.Quote{Brand: "hanes"}, nil))
	assert.False(t, sm.Get("a").HasQuote())
}

func TestSession_Prune(t *testing.T) {
	sm := NewSessionManager()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.Get("old")
	now = now.Add(3 * time.Hour)
	sm.Get("fresh")

	assert.Equal(t, 1, sm.Prune(2*time.Hour))
	assert.Equal(t, 1, sm.Len())
}
