package normalize

import (
	"testing"

	"github.com/guttosm/b3stream/internal/domain/models"
)

func event(payload models.Payload) models.RawEvent {
	return models.RawEvent{ReceivedAt: "2025-06-11T11:00:50.000000000Z", Payload: payload}
}

func TestRecord_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		payload models.Payload
		wantErr bool
		check   func(t *testing.T, r models.Row)
	}{
		{
			name: "full event",
			payload: models.Payload{
				"TradeTime":       "2025-06-11T11:00:47.851407200Z",
				"Ticker":          "CBIO",
				"Quantity":        map[string]any{"units": "100"},
				"PU":              map[string]any{"units": "85", "nanos": float64(500000000)},
				"Amount":          map[string]any{"units": "8550"},
				"TypeDescription": "Negócio",
			},
			check: func(t *testing.T, r models.Row) {
				if r.Date != "11-06-2025" || r.Time != "11:00:47,851" {
					t.Fatalf("date/time: %q %q", r.Date, r.Time)
				}
				if r.Ticker != "CBIO" || r.Quantity != 100 || r.Price != 85.5 || r.Volume != 8550 {
					t.Fatalf("row: %+v", r)
				}
				if r.Type != "Negócio" || r.Canceled != "-" {
					t.Fatalf("type/canc: %q %q", r.Type, r.Canceled)
				}
			},
		},
		{
			name:    "missing quantity yields zero not a drop",
			payload: models.Payload{"TradeTime": "2025-06-11T11:00:47Z", "Ticker": "CBIO"},
			check: func(t *testing.T, r models.Row) {
				if r.Quantity != 0 {
					t.Fatalf("quantity=%d, want 0", r.Quantity)
				}
			},
		},
		{
			name:    "unparsable trade time degrades to raw string",
			payload: models.Payload{"TradeTime": "soon", "Ticker": "CBIO"},
			check: func(t *testing.T, r models.Row) {
				if r.Date != "soon" || r.Time != "soon" {
					t.Fatalf("date/time: %q %q, want raw passthrough", r.Date, r.Time)
				}
			},
		},
		{
			name:    "non-integer quantity units drops the record",
			payload: models.Payload{"Quantity": map[string]any{"units": "many"}},
			wantErr: true,
		},
		{
			name:    "quantity object missing units",
			payload: models.Payload{"Quantity": map[string]any{"nanos": float64(1)}},
			check: func(t *testing.T, r models.Row) {
				if r.Quantity != 0 {
					t.Fatalf("quantity=%d, want 0", r.Quantity)
				}
			},
		},
		{
			name:    "empty payload still normalizes",
			payload: models.Payload{},
			check: func(t *testing.T, r models.Row) {
				if r.Ticker != "" || r.Price != 0 || r.Volume != 0 || r.Canceled != "-" {
					t.Fatalf("row: %+v", r)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := Record(event(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got row %+v", row)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if row.ReceivedAt == "" {
				t.Fatalf("ingestion timestamp not carried over")
			}
			if tc.check != nil {
				tc.check(t, row)
			}
		})
	}
}

func TestRecords_PartialFailureIsolation(t *testing.T) {
	events := []models.RawEvent{
		event(models.Payload{"Ticker": "CBIO", "Quantity": map[string]any{"units": "1"}}),
		event(models.Payload{"Ticker": "CBIO", "Quantity": map[string]any{"units": "oops"}}), // dropped
		event(models.Payload{"Ticker": "TAEE11", "Quantity": map[string]any{"units": "3"}}),
	}

	rows := Records(events)
	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2 (one record dropped)", len(rows))
	}
	if rows[0].Quantity != 1 || rows[1].Quantity != 3 {
		t.Fatalf("surviving rows out of order: %+v", rows)
	}
}
