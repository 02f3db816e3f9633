package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestRepository_SaveAndList(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo, err := NewRepository(ctx, pool)
	require.NoError(t, err)

	created := time.Date(2031, 3, 4, 12, 0, 0, 0, time.UTC)
	rec := models.QuoteRecord{
		Brand: "hanes", Color: "light", Channel: "test",
		Lines:          []models.QuoteLineEntry{{GarmentID: "tshirt", Quantity: 10, UnitPrice: 5, Total: 50}},
		DesignElements: 2, Garments: 10,
		ScreenFee: 20, Total: 70, CreatedAt: created,
	}
	require.NoError(t, repo.SaveQuote(ctx, rec))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM quotes WHERE channel = 'test' AND created_at = $1`, created)
	})

	got, err := repo.ListQuotes(ctx, created.Add(-time.Minute), created.Add(time.Minute))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "tshirt", got[0].Lines[0].GarmentID)
	assert.Equal(t, 70.0, got[0].Total)
	assert.True(t, created.Equal(got[0].CreatedAt))

	none, err := repo.ListQuotes(ctx, created.Add(time.Minute), created.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}
