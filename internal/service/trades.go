package service

import (
	"context"

	"github.com/guttosm/b3stream/internal/domain/models"
	"github.com/guttosm/b3stream/internal/storage"
)

// TradesService defines business logic for querying collected trades.
type TradesService interface {
	ListTrades(ctx context.Context, ticker string, limit int) ([]models.Row, error)
}

type tradesService struct {
	repo storage.RowsRepository
}

func NewTradesService(repo storage.RowsRepository) TradesService {
	return &tradesService{repo: repo}
}

func (s *tradesService) ListTrades(ctx context.Context, ticker string, limit int) ([]models.Row, error) {
	return s.repo.ListByTicker(ticker, limit)
}
