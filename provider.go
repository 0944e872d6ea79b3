package relperf

import (
	"context"
)

// Provider retrieves daily price history from a market data source.
//
// History must return the maximum history available at a daily interval.
// An empty Series is a valid answer: FetchAll turns it into a failure.
type Provider interface {
	// Name identifies the provider in error messages, e.g. "yahoo".
	Name() string
	History(ctx context.Context, ticker Ticker) (Series, error)
}

// FetchAll retrieves the history of every ticker and aligns them in a PriceTable.
//
// It is all or nothing: the first ticker that fails or has no data aborts the batch
// with a *FetchError, and no table is returned. Tickers are fetched in order, one at a time,
// and duplicates are fetched once. Nothing is retried.
func FetchAll(ctx context.Context, p Provider, tickers []Ticker) (*PriceTable, error) {
	tickers = uniqueTickers(tickers)
	series := make([]Series, 0, len(tickers))
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, &FetchError{Ticker: ticker, Provider: p.Name(), Err: err}
		}
		s, err := p.History(ctx, ticker)
		if err != nil {
			return nil, &FetchError{Ticker: ticker, Provider: p.Name(), Err: err}
		}
		if s.Prices.Len() == 0 {
			return nil, &FetchError{Ticker: ticker, Provider: p.Name(), Err: ErrNoData}
		}
		s.Ticker = ticker
		series = append(series, s)
	}
	return NewPriceTable(series...), nil
}
