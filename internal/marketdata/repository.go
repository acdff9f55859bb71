package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lzhao/talos/pkg/logger"
)

// Repository persists daily bars in PostgreSQL.
type Repository struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository creates a bar repository.
func NewRepository(db *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// EnsureSchema creates the bars table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_bars (
			symbol     TEXT             NOT NULL,
			trade_date DATE             NOT NULL,
			open       DOUBLE PRECISION NOT NULL,
			high       DOUBLE PRECISION NOT NULL,
			low        DOUBLE PRECISION NOT NULL,
			close      DOUBLE PRECISION NOT NULL,
			volume     BIGINT           NOT NULL DEFAULT 0,
			PRIMARY KEY (symbol, trade_date)
		)
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create daily_bars table: %w", err)
	}
	return nil
}

// UpsertBars stores a bar series for a symbol, replacing existing rows.
func (r *Repository) UpsertBars(ctx context.Context, symbol Symbol, bars []Bar) error {
	if len(bars) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO daily_bars (symbol, trade_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date)
		DO UPDATE SET open = $3, high = $4, low = $5, close = $6, volume = $7
	`

	for _, b := range bars {
		batch.Queue(query, symbol.String(), b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range bars {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert bar: %w", err)
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"symbol": symbol.String(),
		"count":  len(bars),
	}).Debug("Stored daily bars")

	return nil
}

// LoadRange loads the stored bar series for a symbol over [from, to],
// ordered by date ascending.
func (r *Repository) LoadRange(ctx context.Context, symbol Symbol, from, to time.Time) ([]Bar, error) {
	query := `
		SELECT trade_date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = $1
		  AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.db.Query(ctx, query, symbol.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []Bar
	for rows.Next() {
		var b Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		bars = append(bars, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bars: %w", err)
	}

	return bars, nil
}
