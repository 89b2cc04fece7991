package storage

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/b3stream/internal/domain/models"
	pq "github.com/lib/pq"
)

// RowsRepository defines contract for DB operations on collected trades.
type RowsRepository interface {
	InsertRowsBatch(rows []models.Row) error
	ListByTicker(ticker string, limit int) ([]models.Row, error)
	CountRows() (int64, error)
}

type rowsRepository struct {
	db *sql.DB
}

func NewRowsRepository(db *sql.DB) RowsRepository {
	return &rowsRepository{db: db}
}

// InsertRowsBatch inserts multiple normalized rows in a single transaction.
func (r *rowsRepository) InsertRowsBatch(rows []models.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"sse_trades",
		"trade_date",
		"trade_time",
		"ticker",
		"quantity",
		"price",
		"volume",
		"trade_type",
		"canceled",
		"received_at",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range rows {
		if _, err := stmt.Exec(
			rec.Date,
			rec.Time,
			rec.Ticker,
			rec.Quantity,
			rec.Price,
			rec.Volume,
			rec.Type,
			rec.Canceled,
			rec.ReceivedAt,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListByTicker returns the most recently ingested rows for a ticker,
// newest first, capped at limit.
func (r *rowsRepository) ListByTicker(ticker string, limit int) ([]models.Row, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(`
		SELECT trade_date, trade_time, ticker, quantity, price, volume, trade_type, canceled, received_at
		FROM sse_trades
		WHERE ticker = $1
		ORDER BY received_at DESC
		LIMIT $2
	`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Row
	for rows.Next() {
		var rec models.Row
		if err := rows.Scan(
			&rec.Date,
			&rec.Time,
			&rec.Ticker,
			&rec.Quantity,
			&rec.Price,
			&rec.Volume,
			&rec.Type,
			&rec.Canceled,
			&rec.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// CountRows returns the total number of persisted rows.
func (r *rowsRepository) CountRows() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM sse_trades`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
