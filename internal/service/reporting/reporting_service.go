package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
)

const dateLayout = "2006-01-02"

// QuoteSource lists archived quotes in [start, end).
type QuoteSource interface {
	ListQuotes(ctx context.Context, start, end time.Time) ([]models.QuoteRecord, error)
}

// Summary aggregates archived quotes for a period.
type Summary struct {
	Start     time.Time
	End       time.Time
	Quotes    int
	Garments  int
	Quoted    decimal.Decimal
	ByChannel map[string]int
	ByBrand   map[string]int
}

// Service builds quote digests for the shop owner.
type Service struct {
	source QuoteSource
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source QuoteSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Summarize aggregates the quotes archived in [start, end).
func (s *Service) Summarize(ctx context.Context, start, end time.Time) (Summary, error) {
	records, err := s.source.ListQuotes(ctx, start, end)
	if err != nil {
		return Summary{}, fmt.Errorf("load quotes: %w", err)
	}

	summary := Summary{
		Start:     start,
		End:       end,
		Quoted:    decimal.Zero,
		ByChannel: map[string]int{},
		ByBrand:   map[string]int{},
	}
	for _, r := range records {
		summary.Quotes++
		summary.Garments += r.Garments
		summary.Quoted = summary.Quoted.Add(decimal.NewFromFloat(r.Total))
		summary.ByChannel[r.Channel]++
		summary.ByBrand[r.Brand]++
	}

	s.logger.Debug("quotes summarized", zap.Time("start", start), zap.Time("end", end), zap.Int("quotes", summary.Quotes))
	return summary, nil
}

// DailyDigest summarizes the day containing day (in day's location) as a chat message.
func (s *Service) DailyDigest(ctx context.Context, day time.Time) (string, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	summary, err := s.Summarize(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return "", err
	}
	return FormatSummary(summary), nil
}

// FormatSummary renders a summary for chat.
func FormatSummary(s Summary) string {
	day := s.Start.Format(dateLayout)
	if s.Quotes == 0 {
		return fmt.Sprintf("Quotes (%s): none requested.", day)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Quotes (%s): %d quotes, %d garments, %s quoted.", day, s.Quotes, s.Garments, pricing.FormatAmount(s.Quoted))
	if len(s.ByChannel) > 0 {
		fmt.Fprintf(&b, "\nBy channel: %s", formatCounts(s.ByChannel))
	}
	if len(s.ByBrand) > 0 {
		fmt.Fprintf(&b, "\nBy brand: %s", formatCounts(s.ByBrand))
	}
	return b.String()
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
