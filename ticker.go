package relperf

import (
	"strings"
)

// Ticker identifies a tradable asset or index, as understood by the market data provider (e.g. "SPY", "^IXIC", "EURUSD=X").
//
// It is opaque: no structure is assumed.
type Ticker string

func (t Ticker) String() string { return string(t) }

// ParseTickers splits a comma or space separated list of tickers.
//
// Blank items are dropped and duplicates are removed, keeping the first occurrence.
func ParseTickers(list ...string) []Ticker {
	var tickers []Ticker
	for _, item := range list {
		fields := strings.FieldsFunc(item, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
		for _, f := range fields {
			tickers = append(tickers, Ticker(f))
		}
	}
	return uniqueTickers(tickers)
}

// uniqueTickers returns tickers without duplicates, in first occurrence order.
func uniqueTickers(tickers []Ticker) []Ticker {
	seen := make(map[Ticker]bool, len(tickers))
	result := make([]Ticker, 0, len(tickers))
	for _, t := range tickers {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}
