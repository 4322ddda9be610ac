package dto

import (
	"time"

	"github.com/stormiq/signals-api/internal/domain"
)

// SignalView is the wire shape of one detected signal.
type SignalView struct {
	ID         int64            `json:"id"`
	Type       string           `json:"type"`
	Attributes SignalAttributes `json:"attributes"`
}

type SignalAttributes struct {
	Ticker      string  `json:"ticker"`
	Change      float64 `json:"change"`
	Close       float64 `json:"close"`
	CreatedAt   string  `json:"created_at"`
	Pattern     string  `json:"pattern"`
	PatternType string  `json:"pattern_type"`
	Sentiment   string  `json:"sentiment"`
	Strength    int     `json:"strength"`
	WindowMins  int     `json:"window_mins"`
	Avg3DPerf   float64 `json:"avg_3d_perf"`
}

func NewSignalView(s domain.Signal) SignalView {
	return SignalView{
		ID:   s.ID,
		Type: "signal",
		Attributes: SignalAttributes{
			Ticker:      s.Symbol,
			Change:      s.TotalChange,
			Close:       s.Close,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
			Pattern:     s.Pattern,
			PatternType: s.PatternType,
			Sentiment:   s.Sentiment,
			Strength:    s.Strength,
			WindowMins:  s.WindowMins,
			Avg3DPerf:   s.Avg3DPerf,
		},
	}
}

func NewSignalViews(signals []domain.Signal) []SignalView {
	views := make([]SignalView, 0, len(signals))
	for _, s := range signals {
		views = append(views, NewSignalView(s))
	}
	return views
}

// StockView is the wire shape of one tracked ticker.
type StockView struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	Attributes StockAttributes `json:"attributes"`
}

type StockAttributes struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

func NewStockView(s domain.Stock) StockView {
	return StockView{
		ID:   s.ID,
		Type: "stock",
		Attributes: StockAttributes{
			Ticker: s.Symbol,
			Name:   s.Name,
		},
	}
}

func NewStockViews(stocks []domain.Stock) []StockView {
	views := make([]StockView, 0, len(stocks))
	for _, s := range stocks {
		views = append(views, NewStockView(s))
	}
	return views
}
