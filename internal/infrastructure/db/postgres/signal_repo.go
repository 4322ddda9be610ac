package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/stormiq/signals-api/internal/domain"
)

// signalFetchCap bounds the windowed listing; the analysis pipeline
// writes at most a few hundred rows per day and window.
const signalFetchCap = 750

// The analysis pipeline leaves attribute columns NULL for some rows;
// COALESCE keeps the scan simple.
const signalColumns = `id, symbol, created_at, COALESCE(pattern, ''), COALESCE(pattern_type, ''),
COALESCE(sentiment, ''), COALESCE(total_change, 0), COALESCE(strength, 0),
window_mins, COALESCE(close, 0), COALESCE(avg_3d_perf, 0)`

type SignalRepo struct {
	db *sql.DB
}

func NewSignalRepo(db *sql.DB) *SignalRepo {
	return &SignalRepo{db: db}
}

// mostRecentDay finds the analysis day of the newest row for the
// window. Every query below is scoped to that day.
func (r *SignalRepo) mostRecentDay(ctx context.Context, windowMins int) (sql.NullTime, error) {
	const q = `
SELECT created_at
FROM stock_analysis
WHERE window_mins = $1
ORDER BY created_at DESC
LIMIT 1;
`
	var ts sql.NullTime
	err := r.db.QueryRowContext(ctx, q, windowMins).Scan(&ts)
	if err != nil {
		if isNoRows(err) {
			return sql.NullTime{}, domain.ErrSignalDataUnavailable()
		}
		return sql.NullTime{}, domain.ErrDBUnavailable(err)
	}
	return ts, nil
}

func (r *SignalRepo) Signals(ctx context.Context, windowMins int, tickers []string) ([]domain.Signal, error) {
	latest, err := r.mostRecentDay(ctx, windowMins)
	if err != nil {
		return nil, err
	}

	q := `
SELECT ` + signalColumns + `
FROM stock_analysis
WHERE window_mins = $1
  AND created_at::date = $2::date
`
	args := []any{windowMins, latest.Time}
	if len(tickers) > 0 {
		q += `  AND symbol = ANY($3)
`
		args = append(args, tickers)
	}
	q += `ORDER BY created_at DESC
LIMIT ` + strconv.Itoa(signalFetchCap) + `;`

	return r.querySignals(ctx, q, args...)
}

func (r *SignalRepo) TopByStrength(ctx context.Context, windowMins, limit int, ascending bool) ([]domain.Signal, error) {
	latest, err := r.mostRecentDay(ctx, windowMins)
	if err != nil {
		return nil, err
	}

	order := "DESC"
	if ascending {
		order = "ASC"
	}
	q := `
SELECT ` + signalColumns + `
FROM stock_analysis
WHERE window_mins = $1
  AND created_at::date = $2::date
ORDER BY strength ` + order + `
LIMIT $3;
`
	return r.querySignals(ctx, q, windowMins, latest.Time, limit)
}

func (r *SignalRepo) querySignals(ctx context.Context, query string, args ...any) ([]domain.Signal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Signal
	for rows.Next() {
		var sig domain.Signal
		err := rows.Scan(
			&sig.ID,
			&sig.Symbol,
			&sig.CreatedAt,
			&sig.Pattern,
			&sig.PatternType,
			&sig.Sentiment,
			&sig.TotalChange,
			&sig.Strength,
			&sig.WindowMins,
			&sig.Close,
			&sig.Avg3DPerf,
		)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *SignalRepo) Stocks(ctx context.Context) ([]domain.Stock, error) {
	const q = `
SELECT id, symbol, COALESCE(name, ''), COALESCE(exchange, '')
FROM stock
ORDER BY symbol;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Stock
	for rows.Next() {
		var st domain.Stock
		if err := rows.Scan(&st.ID, &st.Symbol, &st.Name, &st.Exchange); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}
