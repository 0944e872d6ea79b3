package relperf

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/relperf/date"
)

// Settings is the user selection driving one comparison.
//
// It is passed explicitly to Compare, there is no global selection state.
type Settings struct {
	Reference   Ticker
	Comparisons []Ticker
	Since       date.Date // zero means the whole history
}

// Tickers returns the reference followed by the comparisons, without duplicates.
func (s Settings) Tickers() []Ticker {
	return uniqueTickers(append([]Ticker{s.Reference}, s.Comparisons...))
}

// Universe is the fixed set of tickers a user can pick from, with the default selection.
type Universe struct {
	References         []Ticker `yaml:"references"`
	Comparisons        []Ticker `yaml:"comparisons"`
	DefaultReference   Ticker   `yaml:"default_reference"`
	DefaultComparisons []Ticker `yaml:"default_comparisons"`
}

// DefaultUniverse returns the candidate tickers available out of the box.
//
// Ticker symbols follow Yahoo Finance conventions ("^IXIC" for the Nasdaq
// Composite, "EURUSD=X" for currency pairs).
func DefaultUniverse() Universe {
	return Universe{
		References:         []Ticker{"SPY", "DJI", "QQQ", "^IXIC"},
		Comparisons:        []Ticker{"HSI", "GLD", "BTC-USD", "AAPL", "MSFT", "TSLA", "EURUSD=X", "GBPUSD=X", "JPY=X"},
		DefaultReference:   "SPY",
		DefaultComparisons: []Ticker{"HSI", "GLD", "BTC-USD"},
	}
}

// Validate checks that the defaults are part of the candidates.
func (u Universe) Validate() error {
	if len(u.References) == 0 {
		return errors.New("no reference candidates")
	}
	if !slices.Contains(u.References, u.DefaultReference) {
		return fmt.Errorf("default reference %q: %w", u.DefaultReference, ErrNotACandidate)
	}
	for _, t := range u.DefaultComparisons {
		if !slices.Contains(u.Comparisons, t) {
			return fmt.Errorf("default comparison %q: %w", t, ErrNotACandidate)
		}
	}
	return nil
}

// Settings resolves a user selection into Settings.
//
// An empty reference selects the default reference, and empty comparisons select
// the default comparisons. Tickers outside the candidate sets are rejected with
// an error wrapping ErrNotACandidate.
func (u Universe) Settings(reference Ticker, comparisons []Ticker) (Settings, error) {
	if reference == "" {
		reference = u.DefaultReference
	}
	if !slices.Contains(u.References, reference) {
		return Settings{}, fmt.Errorf("reference %q: %w", reference, ErrNotACandidate)
	}

	comparisons = uniqueTickers(comparisons)
	if len(comparisons) == 0 {
		comparisons = slices.Clone(u.DefaultComparisons)
	}
	for _, t := range comparisons {
		if !slices.Contains(u.Comparisons, t) {
			return Settings{}, fmt.Errorf("comparison %q: %w", t, ErrNotACandidate)
		}
	}
	return Settings{Reference: reference, Comparisons: comparisons}, nil
}
