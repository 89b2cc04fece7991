// Package collector drives a time-bounded read of the upstream SSE trade feed.
package collector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/guttosm/b3stream/config"
	"github.com/guttosm/b3stream/internal/domain/models"
	"github.com/guttosm/b3stream/internal/logger"
	"github.com/guttosm/b3stream/internal/sse"
)

// Observer is invoked once per accumulated event with the running count.
// It decouples progress reporting from the collection loop itself.
type Observer func(n int, ev models.RawEvent)

// Session owns one collection run: one outbound connection, one in-memory
// accumulator, no state shared with other sessions. Construct a fresh
// Session per run; Collect resets the accumulator on entry.
type Session struct {
	cfg      config.StreamConfig
	client   *http.Client
	observer Observer
	now      func() time.Time
}

// Option customizes a Session.
type Option func(*Session)

// WithObserver registers a per-event hook (e.g. progress logging).
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithHTTPClient overrides the HTTP client; tests use it to reach an
// httptest upstream without the dial-timeout transport.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// NewSession builds a collection session for the configured feed.
//
// The client carries only a dial timeout: the response body is a long-lived
// stream, so an overall request timeout would kill the collection window.
// There is deliberately no per-line read deadline; a stalled-but-open
// connection blocks until the next line, EOF, or ctx cancellation.
func NewSession(cfg config.StreamConfig, opts ...Option) *Session {
	s := &Session{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collect streams the feed for at most d and returns the accumulated raw
// events.
//
// The loop stops on the first of: wall-clock elapsed ≥ d (checked before
// each line, so a silent stream overshoots until its next line), end of
// stream, ctx cancellation, or a transport fault. Cancellation is a
// graceful stop, not an error. Every terminal path returns whatever was
// accumulated; a failed handshake returns zero events and the fault.
func (s *Session) Collect(ctx context.Context, d time.Duration) ([]models.RawEvent, error) {
	events := make([]models.RawEvent, 0, 128)
	if d <= 0 {
		return events, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return events, fmt.Errorf("build request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return events, nil
		}
		return events, fmt.Errorf("connect %s: %w", s.cfg.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return events, fmt.Errorf("handshake rejected: status %d", resp.StatusCode)
	}

	deadline := s.now().Add(d)
	logger.L().Info().Str("url", s.cfg.URL).Dur("window", d).Msg("collection start")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		// Cooperative stop points: checked between full lines so a partial
		// record is never accumulated.
		select {
		case <-ctx.Done():
			logger.L().Info().Int("events", len(events)).Msg("collection canceled")
			return events, nil
		default:
		}
		if !s.now().Before(deadline) {
			logger.L().Info().Int("events", len(events)).Msg("collection window elapsed")
			return events, nil
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				if errors.Is(err, context.Canceled) || ctx.Err() != nil {
					logger.L().Info().Int("events", len(events)).Msg("collection canceled")
					return events, nil
				}
				return events, fmt.Errorf("read stream: %w", err)
			}
			logger.L().Info().Int("events", len(events)).Msg("stream closed by server")
			return events, nil
		}

		line := scanner.Text()
		if line == "" {
			continue
		}
		payload, ok := sse.ParseLine(line)
		if !ok {
			// Comments, heartbeats and malformed fragments are expected
			// noise on a live feed.
			continue
		}

		ev := models.RawEvent{
			ReceivedAt: s.now().Format(time.RFC3339Nano),
			Payload:    payload,
		}
		events = append(events, ev)
		if s.observer != nil {
			s.observer(len(events), ev)
		}
	}
}

// setHeaders applies the static handshake bundle. The upstream rejects
// clients without a realistic browser identity, hence the extra headers
// beyond the SSE trio.
func (s *Session) setHeaders(req *http.Request) {
	h := s.cfg.Headers
	set := func(key, value string) {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
	set("Accept", h.Accept)
	set("Cache-Control", h.CacheControl)
	set("Connection", h.Connection)
	set("User-Agent", h.UserAgent)
	set("Referer", h.Referer)
	set("Origin", h.Origin)
	set("Accept-Language", h.AcceptLanguage)
}
