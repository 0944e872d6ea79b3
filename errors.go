package relperf

import (
	"errors"
	"fmt"
)

var (
	// ErrReferenceNotFound is returned when the reference ticker is not a column of the table to normalize.
	ErrReferenceNotFound = errors.New("reference ticker not found")

	// ErrNilTable is returned when a nil *PriceTable is given where a table is required.
	ErrNilTable = errors.New("nil price table")

	// ErrNoData is wrapped in a FetchError when a provider returns an empty history.
	ErrNoData = errors.New("no data found")

	// ErrNotACandidate is returned when a selected ticker is not part of the candidate set.
	ErrNotACandidate = errors.New("not a candidate ticker")
)

// FetchError reports the failure to retrieve the price history of one ticker.
//
// A FetchError aborts the whole batch: no partial table is ever returned with it.
type FetchError struct {
	Ticker   Ticker
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("could not fetch %s from %s: %v", e.Ticker, e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
