package normalize

import (
	"fmt"
	"strconv"

	"github.com/guttosm/b3stream/internal/domain/models"
	"github.com/guttosm/b3stream/internal/logger"
)

// cancelPlaceholder fills the CANC column. The upstream feed carries no
// cancellation signal, so the column is a fixed placeholder kept for
// schema compatibility with downstream consumers.
const cancelPlaceholder = "-"

// Record maps one raw event into the fixed row shape.
//
// Field policy (per field, not a blanket catch-all):
//   - TradeTime → DATE/HORA via the formatters; an unparsable timestamp
//     degrades to the raw string, it does not drop the record.
//   - PU → PREÇO and Amount → VOL via Decode; malformed values become 0.0.
//   - Quantity.units → QTDE; a missing Quantity (or missing units) is 0,
//     but a present, non-integer units value is a real fault and the
//     record is rejected.
//
// Returns:
//   - models.Row: the normalized row.
//   - error: non-nil only when the record must be skipped.
func Record(ev models.RawEvent) (models.Row, error) {
	p := ev.Payload

	tradeTime := p.String("TradeTime")
	date, _ := FormatDate(tradeTime)
	clock, _ := FormatTime(tradeTime)

	qty, err := quantity(p.Field("Quantity"))
	if err != nil {
		return models.Row{}, fmt.Errorf("quantity: %w", err)
	}

	return models.Row{
		Date:       date,
		Time:       clock,
		Ticker:     p.String("Ticker"),
		Quantity:   qty,
		Price:      Decode(p.Field("PU")),
		Volume:     Decode(p.Field("Amount")),
		Type:       p.String("TypeDescription"),
		Canceled:   cancelPlaceholder,
		ReceivedAt: ev.ReceivedAt,
	}, nil
}

// Records normalizes a batch, dropping failing records individually.
// One malformed record never aborts the batch; each drop is logged with
// enough context to find the offender later.
func Records(events []models.RawEvent) []models.Row {
	rows := make([]models.Row, 0, len(events))
	for i, ev := range events {
		row, err := Record(ev)
		if err != nil {
			logger.L().Warn().
				Int("index", i).
				Str("received_at", ev.ReceivedAt).
				Err(err).
				Msg("record dropped")
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// quantity extracts the integer quantity from the fixed-point wire shape.
// Absent values are 0; a present but non-integer units string is an error.
func quantity(v any) (int64, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return 0, nil
	}
	units, ok := m["units"]
	if !ok {
		return 0, nil
	}
	switch t := units.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("units %q is not an integer", t)
		}
		return n, nil
	case float64:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("units has unsupported type %T", units)
	}
}
