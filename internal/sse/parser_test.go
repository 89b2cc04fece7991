package sse

import "testing"

func TestParseLine_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		wantOK bool
		check  func(t *testing.T, p map[string]any)
	}{
		{
			name:   "valid event",
			line:   `data: {"a":1}`,
			wantOK: true,
			check: func(t *testing.T, p map[string]any) {
				if v, ok := p["a"].(float64); !ok || v != 1 {
					t.Fatalf("payload a=%v", p["a"])
				}
			},
		},
		{
			name:   "nested money fields",
			line:   `data: {"Ticker":"CBIO","PU":{"units":"85","nanos":500000000}}`,
			wantOK: true,
			check: func(t *testing.T, p map[string]any) {
				if p["Ticker"] != "CBIO" {
					t.Fatalf("ticker=%v", p["Ticker"])
				}
				if _, ok := p["PU"].(map[string]any); !ok {
					t.Fatalf("PU not an object: %T", p["PU"])
				}
			},
		},
		{name: "non-json payload", line: "data: not-json", wantOK: false},
		{name: "heartbeat comment", line: ":heartbeat", wantOK: false},
		{name: "empty line", line: "", wantOK: false},
		{name: "event-type line", line: "event: trade", wantOK: false},
		{name: "missing space after colon", line: `data:{"a":1}`, wantOK: false},
		{name: "json array not object", line: "data: [1,2]", wantOK: false},
		{name: "json null", line: "data: null", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := ParseLine(tc.line)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v, want %v (payload=%v)", ok, tc.wantOK, p)
			}
			if !ok && p != nil {
				t.Fatalf("expected nil payload on miss, got %v", p)
			}
			if tc.check != nil {
				tc.check(t, p)
			}
		})
	}
}
