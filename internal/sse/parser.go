// Package sse extracts structured payloads from raw server-sent-event lines.
package sse

import (
	"encoding/json"
	"strings"

	"github.com/guttosm/b3stream/internal/domain/models"
)

// dataPrefix is the exact marker for an SSE data line, trailing space included.
const dataPrefix = "data: "

// ParseLine decodes one raw line of an SSE stream.
//
// Only lines with the exact "data: " prefix carry events; comments
// (":heartbeat"), event-type lines, and blank keep-alives yield no event.
// The remainder after the prefix must be a JSON object; anything that does
// not decode (heartbeat sentinels, truncated fragments) also yields no
// event. Such lines are expected noise on a live feed, so ParseLine never
// returns an error.
//
// Parameters:
//   - line: one raw line, without its trailing newline.
//
// Returns:
//   - models.Payload: the decoded object, nil when the line carries no event.
//   - bool: true only when a payload was decoded.
func ParseLine(line string) (models.Payload, bool) {
	if !strings.HasPrefix(line, dataPrefix) {
		return nil, false
	}

	var payload models.Payload
	if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &payload); err != nil {
		return nil, false
	}
	if payload == nil {
		// "data: null" decodes without error but carries nothing.
		return nil, false
	}
	return payload, true
}
