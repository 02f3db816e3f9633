package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/soundsystems/shirtcalc/internal/config"
	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

// QuotesRange is the sheet range quote rows are appended to.
const QuotesRange = "Quotes!A:J"

// ValuesAPI is the subset of the Sheets values service the repository needs.
type ValuesAPI interface {
	Append(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	Get(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository exports quotes as spreadsheet rows.
type GoogleSheetRepository struct {
	values        ValuesAPI
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a repository backed by the official Google Sheets API.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewRepository(apiValues{service: service}, cfg.SpreadsheetID, logger), nil
}

// NewRepository wires a repository over any ValuesAPI implementation.
func NewRepository(values ValuesAPI, spreadsheetID string, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{values: values, spreadsheetID: spreadsheetID, logger: logger}
}

// SaveQuote appends one row per quote to QuotesRange.
func (r *GoogleSheetRepository) SaveQuote(ctx context.Context, record models.QuoteRecord) error {
	row := []interface{}{
		record.CreatedAt.UTC().Format(time.RFC3339),
		record.Channel,
		record.Brand,
		record.Color,
		record.Garments,
		record.DesignElements,
		record.ScreenFee,
		record.ColorChangeFee,
		record.WholesaleDiscount,
		record.Total,
	}

	if err := r.values.Append(ctx, r.spreadsheetID, QuotesRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("append quote row: %w", err)
	}

	r.logger.Debug("quote row appended to sheet", zap.String("range", QuotesRange))
	return nil
}

// ListQuotes reads back quote rows created in [start, end). Rows that cannot be
// parsed, including a header row, are skipped.
func (r *GoogleSheetRepository) ListQuotes(ctx context.Context, start, end time.Time) ([]models.QuoteRecord, error) {
	rows, err := r.values.Get(ctx, r.spreadsheetID, QuotesRange)
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", QuotesRange, err)
	}

	var records []models.QuoteRecord
	for _, row := range rows {
		record, err := parseRow(row)
		if err != nil {
			r.logger.Debug("skip quote row", zap.Any("row", row), zap.Error(err))
			continue
		}
		if record.CreatedAt.Before(start) || !record.CreatedAt.Before(end) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(row []interface{}) (models.QuoteRecord, error) {
	if len(row) < 10 {
		return models.QuoteRecord{}, fmt.Errorf("expected 10 columns, got %d", len(row))
	}

	createdAt, err := time.Parse(time.RFC3339, fmt.Sprint(row[0]))
	if err != nil {
		return models.QuoteRecord{}, fmt.Errorf("created_at: %w", err)
	}

	ints := make([]int, 2)
	for i, col := range []int{4, 5} {
		if ints[i], err = strconv.Atoi(fmt.Sprint(row[col])); err != nil {
			return models.QuoteRecord{}, fmt.Errorf("column %d: %w", col, err)
		}
	}

	floats := make([]float64, 4)
	for i, col := range []int{6, 7, 8, 9} {
		if floats[i], err = strconv.ParseFloat(fmt.Sprint(row[col]), 64); err != nil {
			return models.QuoteRecord{}, fmt.Errorf("column %d: %w", col, err)
		}
	}

	return models.QuoteRecord{
		CreatedAt:         createdAt,
		Channel:           fmt.Sprint(row[1]),
		Brand:             fmt.Sprint(row[2]),
		Color:             fmt.Sprint(row[3]),
		Garments:          ints[0],
		DesignElements:    ints[1],
		ScreenFee:         floats[0],
		ColorChangeFee:    floats[1],
		WholesaleDiscount: floats[2],
		Total:             floats[3],
	}, nil
}

// apiValues adapts the generated Sheets client to ValuesAPI.
type apiValues struct {
	service *sheetsapi.Service
}

func (a apiValues) Append(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	payload := &sheetsapi.ValueRange{Values: values}
	_, err := a.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (a apiValues) Get(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := a.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
