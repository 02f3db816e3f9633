package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
	"github.com/soundsystems/shirtcalc/internal/pricing"
	"github.com/soundsystems/shirtcalc/internal/service/quoting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const usage = "Send /quote followed by quantities, e.g.\n" +
	"/quote tshirt=10 hoodie=2 elements=2 dark\n" +
	"Options: brand=<id>, colors=<extra ink colors>, wholesale.\n" +
	"Send /catalog for garment ids and prices."

// Dispatcher turns chat commands into replies.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface on top of the quoting service.
type Service struct {
	quoter quoting.Quoter
	logger *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(quoter quoting.Quoter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{quoter: quoter, logger: logger}
}

// HandleCommand executes cmd. Bad input produces a corrective reply rather than an
// error; errors are reserved for failures the sender cannot fix.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandQuote:
		req, err := BuildQuoteRequest(cmd.Args)
		if err != nil {
			return fmt.Sprintf("Could not read that quote: %v\n\n%s", err, usage), nil
		}

		quote, err := s.quoter.Quote(ctx, req, quoting.ChannelWhatsApp)
		if err != nil {
			if fields, ok := pricing.IsValidation(err); ok {
				return fmt.Sprintf("Could not price that quote: %s\n\n%s", describeFields(fields), usage), nil
			}
			return "", fmt.Errorf("quote for %s: %w", sender, err)
		}
		return quoting.FormatText(quote), nil
	case models.CommandCatalog:
		return formatCatalog(s.quoter.Catalog(), cmd.Args), nil
	case models.CommandHelp, models.CommandUnknown:
		return usage, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// BuildQuoteRequest parses /quote arguments. Keys that are not options are
// treated as garment ids; the pricing step rejects ids the brand does not carry.
func BuildQuoteRequest(args []string) (models.QuoteRequest, error) {
	req := models.QuoteRequest{
		Color:          models.ColorLight,
		Quantities:     map[string]int{},
		DesignElements: pricing.DefaultDesignElements,
	}

	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		if !hasValue {
			switch key {
			case string(models.ColorLight), string(models.ColorDark):
				req.Color = models.Color(key)
			case "wholesale":
				req.Wholesale = true
			default:
				return models.QuoteRequest{}, fmt.Errorf("%w: %q is not key=value", ErrInvalidArguments, arg)
			}
			continue
		}

		var err error
		switch key {
		case "brand":
			req.Brand = value
		case "color":
			req.Color, err = models.ParseColor(value)
		case "elements", "designs", "design_elements":
			req.DesignElements, err = pricing.ParseDesignElements(value)
		case "colors", "extra_colors":
			req.ExtraColors, err = pricing.ParseQuantity(value)
		default:
			req.Quantities[key], err = pricing.ParseQuantity(value)
		}
		if err != nil {
			return models.QuoteRequest{}, fmt.Errorf("%w: %s %v", ErrInvalidArguments, key, err)
		}
	}

	return req, nil
}

func describeFields(fields pricing.FieldErrors) string {
	return strings.TrimPrefix(fields.Error(), "invalid quote request: ")
}

func formatCatalog(catalog models.Catalog, args []string) string {
	brandID := ""
	if len(args) > 0 {
		brandID = args[0]
	}

	brand, ok := catalog.Brand(brandID)
	if !ok {
		ids := make([]string, 0, len(catalog.Brands))
		for _, b := range catalog.Brands {
			ids = append(ids, b.ID)
		}
		return fmt.Sprintf("Unknown brand %q. Brands: %s.", brandID, strings.Join(ids, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s prices (light / dark):\n", brand.Name)
	for _, g := range brand.Garments {
		fmt.Fprintf(&b, "%s (%s): %s / %s\n", g.Name, g.ID, pricing.FormatAmount(g.LightPrice), pricing.FormatAmount(g.DarkPrice))
	}
	fmt.Fprintf(&b, "Screen fee: %s per design element.", pricing.FormatAmount(catalog.ScreenFeePerElement))
	return b.String()
}
