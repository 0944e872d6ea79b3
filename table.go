package relperf

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/etnz/relperf/date"
)

// Series is the daily price history of a single ticker, as returned by a Provider.
type Series struct {
	Ticker   Ticker
	Currency string // ISO 4217 code, empty when unknown
	Prices   *date.History[float64]
}

// PriceTable holds one price per (date, ticker).
//
// Dates form a strictly increasing index shared by every column. Columns are
// ordered, the first one is usually the reference. A missing price is NaN.
//
// A PriceTable is never modified once built: every operation returns a new table.
type PriceTable struct {
	dates      []date.Date
	tickers    []Ticker
	columns    map[Ticker][]float64
	currencies map[Ticker]string
}

// NewPriceTable aligns several series on the union of their dates.
//
// A ticker with no price on a date of the union gets NaN for that date.
// Series are added in order, a ticker appearing twice keeps its first series.
func NewPriceTable(series ...Series) *PriceTable {
	days := make([][]date.Date, 0, len(series))
	for _, s := range series {
		days = append(days, s.Prices.Days())
	}

	t := &PriceTable{
		dates:      slices.Collect(date.Union(days...)),
		columns:    make(map[Ticker][]float64, len(series)),
		currencies: make(map[Ticker]string, len(series)),
	}
	for _, s := range series {
		if _, exists := t.columns[s.Ticker]; exists {
			continue
		}
		col := make([]float64, len(t.dates))
		for i, on := range t.dates {
			v, ok := s.Prices.Get(on)
			if !ok {
				v = math.NaN()
			}
			col[i] = v
		}
		t.tickers = append(t.tickers, s.Ticker)
		t.columns[s.Ticker] = col
		if s.Currency != "" {
			t.currencies[s.Ticker] = s.Currency
		}
	}
	return t
}

// NewPriceTableFromColumns builds a table from columns already aligned on dates.
//
// dates must be strictly increasing, every ticker must have a column of len(dates) values,
// and columns must not contain tickers that are not listed.
func NewPriceTableFromColumns(dates []date.Date, tickers []Ticker, columns map[Ticker][]float64) (*PriceTable, error) {
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			return nil, fmt.Errorf("dates are not strictly increasing: %v then %v", dates[i-1], dates[i])
		}
	}
	if len(columns) != len(tickers) {
		return nil, fmt.Errorf("got %d columns for %d tickers", len(columns), len(tickers))
	}
	t := &PriceTable{
		dates:      slices.Clone(dates),
		columns:    make(map[Ticker][]float64, len(tickers)),
		currencies: make(map[Ticker]string),
	}
	for _, ticker := range tickers {
		if _, exists := t.columns[ticker]; exists {
			return nil, fmt.Errorf("duplicate column %q", ticker)
		}
		col, ok := columns[ticker]
		if !ok {
			return nil, fmt.Errorf("missing column %q", ticker)
		}
		if len(col) != len(dates) {
			return nil, fmt.Errorf("column %q has %d values for %d dates", ticker, len(col), len(dates))
		}
		t.tickers = append(t.tickers, ticker)
		t.columns[ticker] = slices.Clone(col)
	}
	return t, nil
}

// emptyLike returns a table with the same dates, tickers and currencies as t, and zeroed columns.
func (t *PriceTable) emptyLike() *PriceTable {
	out := &PriceTable{
		dates:      slices.Clone(t.dates),
		tickers:    slices.Clone(t.tickers),
		columns:    make(map[Ticker][]float64, len(t.tickers)),
		currencies: make(map[Ticker]string, len(t.currencies)),
	}
	for _, ticker := range t.tickers {
		out.columns[ticker] = make([]float64, len(t.dates))
	}
	for ticker, cur := range t.currencies {
		out.currencies[ticker] = cur
	}
	return out
}

// slice returns the rows [from, to) of t.
func (t *PriceTable) slice(from, to int) *PriceTable {
	out := &PriceTable{
		dates:      slices.Clone(t.dates[from:to]),
		tickers:    slices.Clone(t.tickers),
		columns:    make(map[Ticker][]float64, len(t.tickers)),
		currencies: make(map[Ticker]string, len(t.currencies)),
	}
	for _, ticker := range t.tickers {
		out.columns[ticker] = slices.Clone(t.columns[ticker][from:to])
	}
	for ticker, cur := range t.currencies {
		out.currencies[ticker] = cur
	}
	return out
}

// Len returns the number of rows (dates).
func (t *PriceTable) Len() int { return len(t.dates) }

// Dates returns a copy of the date index.
func (t *PriceTable) Dates() []date.Date { return slices.Clone(t.dates) }

// Tickers returns the column keys in column order.
func (t *PriceTable) Tickers() []Ticker { return slices.Clone(t.tickers) }

// Has reports whether ticker is a column of the table.
func (t *PriceTable) Has(ticker Ticker) bool {
	_, ok := t.columns[ticker]
	return ok
}

// Column returns a copy of the values of ticker, or nil if it is not a column.
func (t *PriceTable) Column(ticker Ticker) []float64 { return slices.Clone(t.columns[ticker]) }

// Value returns the value of ticker at row i, NaN if ticker is not a column.
func (t *PriceTable) Value(i int, ticker Ticker) float64 {
	col, ok := t.columns[ticker]
	if !ok {
		return math.NaN()
	}
	return col[i]
}

// At returns the value of ticker on a given day.
//
// It returns false if the day is not in the index or ticker is not a column.
// A missing price is reported as NaN and true.
func (t *PriceTable) At(on date.Date, ticker Ticker) (float64, bool) {
	col, ok := t.columns[ticker]
	if !ok {
		return math.NaN(), false
	}
	i, found := slices.BinarySearchFunc(t.dates, on, date.Date.Compare)
	if !found {
		return math.NaN(), false
	}
	return col[i], true
}

// Currency returns the currency of ticker's prices, empty if unknown.
func (t *PriceTable) Currency(ticker Ticker) string { return t.currencies[ticker] }

// Tail returns the last n rows. The whole table if it has less than n rows.
func (t *PriceTable) Tail(n int) *PriceTable {
	n = max(0, min(n, t.Len()))
	return t.slice(t.Len()-n, t.Len())
}

// Since returns the rows on or after day. A zero day returns the whole table.
func (t *PriceTable) Since(day date.Date) *PriceTable {
	if day.IsZero() {
		return t.slice(0, t.Len())
	}
	i, _ := slices.BinarySearchFunc(t.dates, day, date.Date.Compare)
	return t.slice(i, t.Len())
}

// Rows returns an iterator over the rows in chronological order.
//
// Values are in column order (see Tickers). The yielded slice is reused between rows.
func (t *PriceTable) Rows() iter.Seq2[date.Date, []float64] {
	return func(yield func(date.Date, []float64) bool) {
		row := make([]float64, len(t.tickers))
		for i, on := range t.dates {
			for j, ticker := range t.tickers {
				row[j] = t.columns[ticker][i]
			}
			if !yield(on, row) {
				return
			}
		}
	}
}
