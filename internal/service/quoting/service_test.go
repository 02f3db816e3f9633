package quoting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
)

type recordingArchive struct {
	records []models.QuoteRecord
	err     error
}

func (r *recordingArchive) SaveQuote(_ context.Context, record models.QuoteRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func newTestService(t *testing.T, archives map[string]Archive) *Service {
	t.Helper()
	catalog, err := pricing.DefaultCatalog()
	require.NoError(t, err)

	svc := NewService(catalog, archives, nil)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) }
	return svc
}

func exampleRequest() models.QuoteRequest {
	return models.QuoteRequest{
		Color:          models.ColorLight,
		Quantities:     map[string]int{"tshirt": 10, "hoodie": 2},
		DesignElements: 2,
	}
}

func TestService_QuoteArchives(t *testing.T) {
	archive := &recordingArchive{}
	svc := newTestService(t, map[string]Archive{"mongo": archive, "sheets": nil})

	q, err := svc.Quote(context.Background(), exampleRequest(), ChannelAPI)
	require.NoError(t, err)

	assert.Equal(t, "106.00", q.Total.StringFixed(2))
	assert.Equal(t, 2026, q.ComputedAt.Year())
	require.Len(t, archive.records, 1)
	assert.Equal(t, ChannelAPI, archive.records[0].Channel)
	assert.Equal(t, 12, archive.records[0].Garments)
}

func TestService_ArchiveFailureDoesNotFailQuote(t *testing.T) {
	svc := newTestService(t, map[string]Archive{"mongo": &recordingArchive{err: errors.New("down")}})

	q, err := svc.Quote(context.Background(), exampleRequest(), ChannelWeb)
	require.NoError(t, err)
	assert.Len(t, q.Lines, 2)
}

func TestService_ValidationErrorSkipsArchive(t *testing.T) {
	archive := &recordingArchive{}
	svc := newTestService(t, map[string]Archive{"mongo": archive})

	req := exampleRequest()
	req.DesignElements = 0
	_, err := svc.Quote(context.Background(), req, ChannelWeb)

	_, ok := pricing.IsValidation(err)
	assert.True(t, ok)
	assert.Empty(t, archive.records)
}

func TestFormatText(t *testing.T) {
	svc := newTestService(t, nil)
	req := exampleRequest()
	req.Wholesale = true

	q, err := svc.Quote(context.Background(), req, ChannelWhatsApp)
	require.NoError(t, err)

	text := FormatText(q)
	assert.Contains(t, text, "10 x T-Shirt @ $5.00 = $50.00")
	assert.Contains(t, text, "2 x Hoodie @ $18.00 = $36.00")
	assert.Contains(t, text, "Screen fee (2 design elements): $20.00")
	assert.Contains(t, text, "Wholesale discount: -$8.60")
	assert.Contains(t, text, "Total: $97.40")
	assert.NotContains(t, text, "Color changes")
}
