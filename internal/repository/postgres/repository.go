package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

const schema = `CREATE TABLE IF NOT EXISTS quotes (
	id                 BIGSERIAL PRIMARY KEY,
	brand              TEXT NOT NULL,
	color              TEXT NOT NULL,
	channel            TEXT NOT NULL,
	lines              JSONB NOT NULL,
	design_elements    INTEGER NOT NULL,
	garments           INTEGER NOT NULL,
	screen_fee         NUMERIC(12,2) NOT NULL,
	color_change_fee   NUMERIC(12,2) NOT NULL,
	wholesale_discount NUMERIC(12,2) NOT NULL,
	total              NUMERIC(12,2) NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS quotes_created_at_idx ON quotes (created_at);`

const quoteSelectCols = `brand, color, channel, lines, design_elements, garments,
	screen_fee::float8, color_change_fee::float8, wholesale_discount::float8, total::float8, created_at`

// Repository archives quotes in a PostgreSQL table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewPool connects and pings the database.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// NewRepository ensures the quotes table exists.
func NewRepository(ctx context.Context, pool *pgxpool.Pool) (*Repository, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create quotes table: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func scanQuote(scan func(...any) error) (models.QuoteRecord, error) {
	var r models.QuoteRecord
	err := scan(
		&r.Brand, &r.Color, &r.Channel, &r.Lines, &r.DesignElements, &r.Garments,
		&r.ScreenFee, &r.ColorChangeFee, &r.WholesaleDiscount, &r.Total, &r.CreatedAt,
	)
	return r, err
}

// SaveQuote archives one computed quote.
func (r *Repository) SaveQuote(ctx context.Context, record models.QuoteRecord) error {
	lines := record.Lines
	if lines == nil {
		lines = []models.QuoteLineEntry{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO quotes
		 (brand, color, channel, lines, design_elements, garments,
		  screen_fee, color_change_fee, wholesale_discount, total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.Brand, record.Color, record.Channel, lines, record.DesignElements, record.Garments,
		record.ScreenFee, record.ColorChangeFee, record.WholesaleDiscount, record.Total, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// ListQuotes returns quotes created in [start, end), oldest first.
func (r *Repository) ListQuotes(ctx context.Context, start, end time.Time) ([]models.QuoteRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quoteSelectCols+`
		 FROM quotes
		 WHERE created_at >= $1 AND created_at < $2
		 ORDER BY created_at ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var records []models.QuoteRecord
	for rows.Next() {
		rec, err := scanQuote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
