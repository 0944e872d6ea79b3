package relperf

import (
	"fmt"
	"math"
)

// Base is the value the reference column reads on every row of a normalized table.
const Base = 100.0

// Normalize rescales every column of table so that, on each date, the reference reads 100
// and every other ticker is expressed as a percentage of the reference:
//
//	out[date][t] = table[date][t] / table[date][reference] * 100
//
// When the reference value of a row is zero, missing or infinite, the ratio is undefined and
// every value of that output row is NaN.
//
// It returns an error wrapping ErrReferenceNotFound if reference is not a column of table.
// The input table is not modified.
func Normalize(table *PriceTable, reference Ticker) (*PriceTable, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	base, ok := table.columns[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in %v", ErrReferenceNotFound, reference, table.tickers)
	}

	out := table.emptyLike()
	for _, ticker := range table.tickers {
		in, col := table.columns[ticker], out.columns[ticker]
		for i, v := range in {
			col[i] = ratio(v, base[i])
		}
	}
	return out, nil
}

// ratio returns v relative to base, in percent. NaN when base cannot be divided by.
func ratio(v, base float64) float64 {
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return math.NaN()
	}
	return v / base * Base
}

// lastDefined returns the last value of col that is not NaN, or NaN.
func lastDefined(col []float64) float64 {
	for i := len(col) - 1; i >= 0; i-- {
		if !math.IsNaN(col[i]) {
			return col[i]
		}
	}
	return math.NaN()
}
