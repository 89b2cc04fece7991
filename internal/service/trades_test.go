package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/b3stream/internal/domain/models"
)

type stubRepo struct {
	rows []models.Row
	err  error
}

func (s *stubRepo) InsertRowsBatch(_ []models.Row) error { return nil }
func (s *stubRepo) ListByTicker(string, int) ([]models.Row, error) {
	return s.rows, s.err
}
func (s *stubRepo) CountRows() (int64, error) { return 0, nil }

func TestTradesService_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		repo    *stubRepo
		wantErr bool
		wantLen int
	}{
		{
			name:    "success",
			repo:    &stubRepo{rows: []models.Row{{Ticker: "CBIO", Quantity: 10}}},
			wantErr: false,
			wantLen: 1,
		},
		{
			name:    "empty",
			repo:    &stubRepo{},
			wantErr: false,
			wantLen: 0,
		},
		{
			name:    "error",
			repo:    &stubRepo{err: errors.New("boom")},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTradesService(tc.repo)
			out, err := svc.ListTrades(context.Background(), "CBIO", 10)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got out=%+v", out)
				}
				return
			}
			if err != nil || len(out) != tc.wantLen {
				t.Fatalf("unexpected: out=%+v err=%v", out, err)
			}
		})
	}
}
