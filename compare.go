package relperf

import (
	"context"
)

// Comparison is the outcome of one fetch then normalize cycle.
type Comparison struct {
	Settings Settings
	Raw      *PriceTable // prices as fetched
	Relative *PriceTable // Raw normalized to the reference
}

// Compare fetches the tickers of s from p, keeps the rows since s.Since, and normalizes them to s.Reference.
//
// Every call works on its own freshly fetched table. Fetch failures are returned as *FetchError.
func Compare(ctx context.Context, p Provider, s Settings) (*Comparison, error) {
	raw, err := FetchAll(ctx, p, s.Tickers())
	if err != nil {
		return nil, err
	}
	raw = raw.Since(s.Since)

	relative, err := Normalize(raw, s.Reference)
	if err != nil {
		return nil, err
	}
	return &Comparison{Settings: s, Raw: raw, Relative: relative}, nil
}

// Performance is the latest relative value of a ticker.
type Performance struct {
	Ticker Ticker
	Value  float64 // percent of the reference, NaN when unknown
}

// Latest returns, for every ticker, its last defined relative value.
//
// Tickers are in column order.
func (c *Comparison) Latest() []Performance {
	perfs := make([]Performance, 0, len(c.Relative.tickers))
	for _, ticker := range c.Relative.tickers {
		perfs = append(perfs, Performance{Ticker: ticker, Value: lastDefined(c.Relative.columns[ticker])})
	}
	return perfs
}
