package quoting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
)

// Channels a quote can be requested through.
const (
	ChannelWeb      = "web"
	ChannelAPI      = "api"
	ChannelWhatsApp = "whatsapp"
)

const archiveTimeout = 5 * time.Second

// Archive stores computed quotes. Both the MongoDB and the Google Sheets repositories satisfy it.
type Archive interface {
	SaveQuote(ctx context.Context, record models.QuoteRecord) error
}

// Quoter is what the HTTP and chat layers need from the service.
type Quoter interface {
	Catalog() models.Catalog
	Quote(ctx context.Context, req models.QuoteRequest, channel string) (models.Quote, error)
}

// Service prices requests and records every successful quote.
type Service struct {
	catalog  models.Catalog
	archives map[string]Archive
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a quoting service. archives is keyed by a name used in logs;
// nil entries are ignored so disabled integrations can be passed through.
func NewService(catalog models.Catalog, archives map[string]Archive, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	active := make(map[string]Archive, len(archives))
	for name, a := range archives {
		if a != nil {
			active[name] = a
		}
	}

	return &Service{
		catalog:  catalog,
		archives: active,
		logger:   logger,
		now:      time.Now,
	}
}

// Catalog returns the pricing catalog quotes are computed against.
func (s *Service) Catalog() models.Catalog {
	return s.catalog
}

// Quote computes a quote and archives it. Archive failures are logged and do
// not affect the returned quote.
func (s *Service) Quote(ctx context.Context, req models.QuoteRequest, channel string) (models.Quote, error) {
	quote, err := pricing.Calculate(s.catalog, req)
	if err != nil {
		return models.Quote{}, err
	}
	quote.ComputedAt = s.now().UTC()

	s.logger.Info("quote computed",
		zap.String("channel", channel),
		zap.String("brand", quote.Brand),
		zap.String("color", string(quote.Color)),
		zap.Int("garments", quote.GarmentCount()),
		zap.String("total", quote.Total.StringFixed(2)))

	if len(s.archives) > 0 {
		record := models.NewQuoteRecord(quote, channel)
		archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		defer cancel()

		for name, archive := range s.archives {
			if err := archive.SaveQuote(archiveCtx, record); err != nil {
				s.logger.Error("failed to archive quote", zap.String("archive", name), zap.Error(err))
			}
		}
	}

	return quote, nil
}
