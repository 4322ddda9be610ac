package http_handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/stormiq/signals-api/internal/application/signals"
	"github.com/stormiq/signals-api/internal/transport/http/dto"
	"github.com/stormiq/signals-api/internal/transport/http/response"
)

type SignalsHandler struct {
	svc *signals.Service
}

func NewSignalsHandler(svc *signals.Service) *SignalsHandler {
	return &SignalsHandler{svc: svc}
}

// Tickers handles GET /stocks/tickers
func (h *SignalsHandler) Tickers(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.svc.Stocks(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewStockViews(stocks))
}

// Signals handles GET /stocks/signals?window_mins=5&tickers=AAPL,MSFT
func (h *SignalsHandler) Signals(w http.ResponseWriter, r *http.Request) {
	windowMins := queryInt(r, "window_mins", signals.DefaultWindowMins)
	tickers := queryCSV(r, "tickers")

	out, err := h.svc.Signals(r.Context(), windowMins, tickers)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSignalViews(out))
}

// TopGainers handles GET /stocks/top-gainers?window_mins=5&limit=25
func (h *SignalsHandler) TopGainers(w http.ResponseWriter, r *http.Request) {
	windowMins := queryInt(r, "window_mins", signals.DefaultWindowMins)
	limit := queryInt(r, "limit", signals.DefaultTopLimit)

	out, err := h.svc.TopGainers(r.Context(), windowMins, limit)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSignalViews(out))
}

// TopLosers handles GET /stocks/top-losers?window_mins=5&limit=25
func (h *SignalsHandler) TopLosers(w http.ResponseWriter, r *http.Request) {
	windowMins := queryInt(r, "window_mins", signals.DefaultWindowMins)
	limit := queryInt(r, "limit", signals.DefaultTopLimit)

	out, err := h.svc.TopLosers(r.Context(), windowMins, limit)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewSignalViews(out))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func queryCSV(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
