package renderer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
)

func history(points map[string]float64) *date.History[float64] {
	h := new(date.History[float64])
	for on, v := range points {
		h.Append(date.MustParse(on), v)
	}
	return h
}

// comparison returns SPY vs GLD and HSI, with HSI missing on the last day.
func comparison(t *testing.T) *relperf.Comparison {
	t.Helper()
	raw := relperf.NewPriceTable(
		relperf.Series{Ticker: "SPY", Currency: "USD", Prices: history(map[string]float64{"2025-01-02": 100, "2025-01-03": 110})},
		relperf.Series{Ticker: "GLD", Currency: "USD", Prices: history(map[string]float64{"2025-01-02": 50, "2025-01-03": 60})},
		relperf.Series{Ticker: "HSI", Prices: history(map[string]float64{"2025-01-02": 200})},
	)
	relative, err := relperf.Normalize(raw, "SPY")
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	return &relperf.Comparison{
		Settings: relperf.Settings{Reference: "SPY", Comparisons: []relperf.Ticker{"GLD", "HSI"}},
		Raw:      raw,
		Relative: relative,
	}
}

func TestComparisonMarkdown(t *testing.T) {
	got := ComparisonMarkdown(comparison(t), Options{WithRelative: true})

	for _, want := range []string{
		"# Relative Market Performance",
		"## Raw Adjusted Closing Prices",
		"## Relative Performance (Normalized to SPY = 100)",
		"2 trading days from 2025-01-02 to 2025-01-03.",
		"$110.00",
		"54.55",
		"-45.45%",
		"+0.00%",
		"+100.00%", // HSI latest defined value is 200
		missing,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ComparisonMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestComparisonMarkdownSkipRaw(t *testing.T) {
	got := ComparisonMarkdown(comparison(t), Options{SkipRaw: true})
	if strings.Contains(got, "Raw Adjusted Closing Prices") {
		t.Errorf("ComparisonMarkdown(SkipRaw) renders the raw prices:\n%s", got)
	}
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name string
		got  string
		want string
	}{
		{"price USD", formatPrice(580.12, "USD"), "$580.12"},
		{"price unknown currency", formatPrice(1.5, ""), "1.50"},
		{"price NaN", formatPrice(math.NaN(), "USD"), missing},
		{"relative", formatRelative(123.456), "123.46"},
		{"relative Inf", formatRelative(math.Inf(1)), missing},
		{"spread up", formatSpread(112.5), "+12.50%"},
		{"spread down", formatSpread(87.5), "-12.50%"},
	}
	for _, tc := range testCases {
		if tc.got != tc.want {
			t.Errorf("%s = %q want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestLineChart(t *testing.T) {
	c := comparison(t)
	got := LineChart(c.Relative, ChartOptions{Baseline: relperf.Base})

	if n := strings.Count(got, `<path class="series"`); n != 3 {
		t.Errorf("LineChart() has %d series, want 3", n)
	}
	if !strings.Contains(got, `class="baseline"`) {
		t.Errorf("LineChart() has no baseline")
	}
	if !strings.HasPrefix(got, "<svg") || !strings.HasSuffix(got, "</svg>") {
		t.Errorf("LineChart() is not an svg document: %s", got)
	}
}

func TestLineChartBreaksOnMissingValues(t *testing.T) {
	tbl, err := relperf.NewPriceTableFromColumns(
		[]date.Date{date.New(2025, 1, 1), date.New(2025, 1, 2), date.New(2025, 1, 3)},
		[]relperf.Ticker{"A"},
		map[relperf.Ticker][]float64{"A": {1, math.NaN(), 2}},
	)
	if err != nil {
		t.Fatalf("NewPriceTableFromColumns() unexpected error: %v", err)
	}
	got := LineChart(tbl, ChartOptions{})
	_, d, _ := strings.Cut(got, ` d="`)
	d, _, _ = strings.Cut(d, `"`)
	if n := strings.Count(d, "M"); n != 2 {
		t.Errorf("LineChart() path %q has %d segments, want 2", d, n)
	}
}

func TestLineChartEmpty(t *testing.T) {
	got := LineChart(relperf.NewPriceTable(), ChartOptions{})
	if !strings.Contains(got, "no data") {
		t.Errorf("LineChart(empty) = %s want a no data message", got)
	}
}

func TestHTML(t *testing.T) {
	got, err := HTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML() unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Title</h1>", "<table>", "<td>1</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() does not contain %q:\n%s", want, got)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{&relperf.FetchError{Ticker: "XYZ", Provider: "yahoo", Err: relperf.ErrNoData}, "No data returned for XYZ"},
		{&relperf.FetchError{Ticker: "GLD", Provider: "yahoo", Err: errors.New("timeout")}, "Failed to fetch data for GLD: timeout"},
		{relperf.ErrNotACandidate, "Invalid selection"},
		{fmt.Errorf("%w: %q", relperf.ErrReferenceNotFound, "FOO"), "Cannot normalize: reference ticker not found"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tc := range testCases {
		if got := ErrorMessage(tc.err); !strings.Contains(got, tc.want) {
			t.Errorf("ErrorMessage(%v) = %q want it to contain %q", tc.err, got, tc.want)
		}
	}
}
