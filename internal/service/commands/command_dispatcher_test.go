package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
	"github.com/soundsystems/shirtcalc/internal/service/quoting"
)

type failingQuoter struct {
	catalog models.Catalog
}

func (f failingQuoter) Catalog() models.Catalog { return f.catalog }

func (f failingQuoter) Quote(context.Context, models.QuoteRequest, string) (models.Quote, error) {
	return models.Quote{}, errors.New("boom")
}

func newDispatcher(t *testing.T) *Service {
	t.Helper()
	catalog, err := pricing.DefaultCatalog()
	require.NoError(t, err)
	return NewService(quoting.NewService(catalog, nil, nil), nil)
}

func TestBuildQuoteRequest(t *testing.T) {
	req, err := BuildQuoteRequest([]string{"tshirt=10", "hoodie=2", "elements=2", "dark", "brand=gildan", "colors=1", "wholesale"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"tshirt": 10, "hoodie": 2}, req.Quantities)
	assert.Equal(t, 2, req.DesignElements)
	assert.Equal(t, models.ColorDark, req.Color)
	assert.Equal(t, "gildan", req.Brand)
	assert.Equal(t, 1, req.ExtraColors)
	assert.True(t, req.Wholesale)
}

func TestBuildQuoteRequest_Defaults(t *testing.T) {
	req, err := BuildQuoteRequest([]string{"tshirt="})
	require.NoError(t, err)

	assert.Equal(t, models.ColorLight, req.Color)
	assert.Equal(t, pricing.DefaultDesignElements, req.DesignElements)
	assert.Equal(t, 0, req.Quantities["tshirt"])
}

func TestBuildQuoteRequest_Rejects(t *testing.T) {
	for _, args := range [][]string{{"tshirt"}, {"tshirt=-1"}, {"elements=0"}, {"color=neon"}} {
		_, err := BuildQuoteRequest(args)
		assert.ErrorIs(t, err, ErrInvalidArguments, "%v", args)
	}
}

func TestHandleCommand_Quote(t *testing.T) {
	reply, err := newDispatcher(t).HandleCommand(context.Background(), models.ParseCommand("/quote tshirt=10 hoodie=2 elements=2"), "224600000000")
	require.NoError(t, err)

	assert.Contains(t, reply, "10 x T-Shirt @ $5.00 = $50.00")
	assert.Contains(t, reply, "Total: $106.00")
}

func TestHandleCommand_UserErrorsGetUsage(t *testing.T) {
	d := newDispatcher(t)

	reply, err := d.HandleCommand(context.Background(), models.ParseCommand("/quote tote=3"), "x")
	require.NoError(t, err)
	assert.Contains(t, reply, "Could not price that quote")
	assert.Contains(t, reply, "qty_tote")
	assert.Contains(t, reply, "/quote tshirt=10")

	reply, err = d.HandleCommand(context.Background(), models.ParseCommand("/quote lots"), "x")
	require.NoError(t, err)
	assert.Contains(t, reply, "Could not read that quote")
}

func TestHandleCommand_InfrastructureErrorPropagates(t *testing.T) {
	d := NewService(failingQuoter{}, nil)

	_, err := d.HandleCommand(context.Background(), models.ParseCommand("/quote tshirt=1"), "x")
	assert.Error(t, err)
}

func TestHandleCommand_Catalog(t *testing.T) {
	d := newDispatcher(t)

	reply, err := d.HandleCommand(context.Background(), models.ParseCommand("/catalog independent"), "x")
	require.NoError(t, err)
	assert.Contains(t, reply, "Independent Heavyweight Zip-Up Hoodie (hoodie-zip): $30.00 / $32.00")
	assert.Contains(t, reply, "Screen fee: $10.00 per design element.")

	reply, err = d.HandleCommand(context.Background(), models.ParseCommand("/catalog bella"), "x")
	require.NoError(t, err)
	assert.Contains(t, reply, "Brands: hanes, gildan, comfortcolors, independent.")
}

func TestHandleCommand_HelpAndUnknown(t *testing.T) {
	d := newDispatcher(t)
	for _, text := range []string{"/help", "hello"} {
		reply, err := d.HandleCommand(context.Background(), models.ParseCommand(text), "x")
		require.NoError(t, err)
		assert.Equal(t, usage, reply)
	}
}
