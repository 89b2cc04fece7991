package models

// Payload is one decoded SSE data line. The upstream feed publishes
// schemaless JSON objects, so fields are extracted best-effort; the keys
// the pipeline cares about are TradeTime, Ticker, Quantity, PU, Amount
// and TypeDescription.
type Payload map[string]any

// RawEvent pairs a decoded payload with the wall-clock instant the
// collector received it. ReceivedAt is the ingestion timestamp and is
// distinct from the trade time embedded in the payload.
type RawEvent struct {
	ReceivedAt string
	Payload    Payload
}

// String returns the named field as a string, or "" when the field is
// absent or not a string.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Field returns the raw value of the named field (possibly nil).
func (p Payload) Field(key string) any {
	return p[key]
}
