package signals

import (
	"context"

	"github.com/stormiq/signals-api/internal/domain"
)

const (
	DefaultWindowMins = 5
	DefaultTopLimit   = 25
)

/*
SignalRepo
----------
Read-only persistence port for precomputed signal rows. All queries are
scoped to the most recent analysis day for the requested window.
*/
type SignalRepo interface {
	Signals(ctx context.Context, windowMins int, tickers []string) ([]domain.Signal, error)
	TopByStrength(ctx context.Context, windowMins, limit int, ascending bool) ([]domain.Signal, error)
	Stocks(ctx context.Context) ([]domain.Stock, error)
}

// Service exposes the read-only reporting surface over precomputed
// signal data.
type Service struct {
	repo SignalRepo
}

func NewService(repo SignalRepo) *Service {
	return &Service{repo: repo}
}

// Signals returns the most recent day's signals for a window, newest
// first, optionally filtered to a set of tickers.
func (s *Service) Signals(ctx context.Context, windowMins int, tickers []string) ([]domain.Signal, error) {
	if windowMins <= 0 {
		windowMins = DefaultWindowMins
	}
	return s.repo.Signals(ctx, windowMins, tickers)
}

// Stocks returns every ticker known to the analysis pipeline.
func (s *Service) Stocks(ctx context.Context) ([]domain.Stock, error) {
	return s.repo.Stocks(ctx)
}

// TopGainers returns the strongest signals for the window, one entry
// per ticker.
func (s *Service) TopGainers(ctx context.Context, windowMins, limit int) ([]domain.Signal, error) {
	return s.top(ctx, windowMins, limit, false)
}

// TopLosers returns the weakest signals for the window, one entry per
// ticker.
func (s *Service) TopLosers(ctx context.Context, windowMins, limit int) ([]domain.Signal, error) {
	return s.top(ctx, windowMins, limit, true)
}

func (s *Service) top(ctx context.Context, windowMins, limit int, ascending bool) ([]domain.Signal, error) {
	if windowMins <= 0 {
		windowMins = DefaultWindowMins
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	rows, err := s.repo.TopByStrength(ctx, windowMins, limit, ascending)
	if err != nil {
		return nil, err
	}
	return dedupeBySymbol(rows), nil
}

// dedupeBySymbol keeps the first (highest-ranked) signal per ticker.
func dedupeBySymbol(rows []domain.Signal) []domain.Signal {
	seen := make(map[string]struct{}, len(rows))
	out := make([]domain.Signal, 0, len(rows))
	for _, sig := range rows {
		if _, ok := seen[sig.Symbol]; ok {
			continue
		}
		seen[sig.Symbol] = struct{}{}
		out = append(out, sig)
	}
	return out
}
