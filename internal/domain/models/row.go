package models

// Columns is the fixed output schema, in export order. The names are kept
// in Portuguese to match the files downstream consumers already ingest.
var Columns = []string{"DATE", "HORA", "ATIVO", "QTDE", "PREÇO", "VOL", "TIPO", "CANC"}

// Row is one normalized trade in the fixed tabular shape.
//
// Column mapping:
//  1. Date     → DATE  (DD-MM-YYYY)
//  2. Time     → HORA  (HH:MM:SS,mmm — comma before milliseconds)
//  3. Ticker   → ATIVO
//  4. Quantity → QTDE
//  5. Price    → PREÇO (decoded unit price)
//  6. Volume   → VOL   (decoded financial amount)
//  7. Type     → TIPO
//  8. Canceled → CANC
//
// Canceled is always the "-" placeholder: the upstream feed publishes no
// cancellation signal, so the column exists only for schema compatibility.
type Row struct {
	Date       string
	Time       string
	Ticker     string
	Quantity   int64
	Price      float64
	Volume     float64
	Type       string
	Canceled   string
	ReceivedAt string
}
