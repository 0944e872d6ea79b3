// Package relperf compares the performance of financial assets relative to a reference.
//
// The daily price history of a set of tickers is retrieved from a market data
// Provider and aligned by date in a PriceTable. Normalize then rescales the
// table so that the reference ticker reads 100 on every date, and every other
// ticker reads as a percentage of the reference price. When that percentage
// rises, the ticker is outperforming the reference.
//
// Compare runs the whole fetch then normalize cycle for a user's Settings,
// which are resolved from the candidate tickers of a Universe.
//
// Providers live in sub packages (yahoo, eodhd), the presentation in renderer
// and dashboard, and the `relperf` command-line tool in cmd.
package relperf
