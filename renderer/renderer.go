// Package renderer turns comparisons into markdown reports, HTML and SVG charts.
package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/etnz/relperf"
	md "github.com/nao1215/markdown"
)

// DefaultTailRows is the number of most recent rows previewed in a report.
const DefaultTailRows = 5

// Options holds configuration for rendering a comparison report.
type Options struct {
	TailRows     int  // number of rows in the table previews, DefaultTailRows when 0
	SkipRaw      bool // do not render the raw prices preview
	WithRelative bool // also preview the tail of the relative table
}

func (o Options) tailRows() int {
	if o.TailRows <= 0 {
		return DefaultTailRows
	}
	return o.TailRows
}

// Title returns the report title.
func Title() string { return "Relative Market Performance" }

// Description explains how to read a chart normalized to reference.
func Description(reference relperf.Ticker) string {
	ref := md.Bold(string(reference))
	return fmt.Sprintf("Each line is the asset's price as a percentage of the %s price on the same day, so %s stays flat at 100. "+
		"A line going up means the asset is outperforming %s over that stretch of time, going down means it is underperforming.",
		ref, ref, ref)
}

// ComparisonMarkdown renders a comparison to a markdown string.
func ComparisonMarkdown(c *relperf.Comparison, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	ref := c.Settings.Reference
	doc.H1(Title())
	doc.PlainTextf("Compare market performance relative to %s.", md.Bold(string(ref)))

	first, last := period(c.Raw)
	doc.PlainTextf("%d trading days from %s to %s.", c.Raw.Len(), first, last)

	if !opts.SkipRaw {
		doc.H2("Raw Adjusted Closing Prices")
		doc.Table(tableSet(c.Raw.Tail(opts.tailRows()), formatPrice))
	}

	doc.H2(fmt.Sprintf("Relative Performance (Normalized to %s = 100)", ref))
	doc.PlainText(Description(ref))

	if opts.WithRelative {
		doc.Table(tableSet(c.Relative.Tail(opts.tailRows()), func(v float64, _ string) string { return formatRelative(v) }))
	}

	doc.H2("Latest")
	latest := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Ticker", fmt.Sprintf("%% of %s", ref), "vs " + string(ref)},
	}
	for _, p := range c.Latest() {
		latest.Rows = append(latest.Rows, []string{string(p.Ticker), formatRelative(p.Value), formatSpread(p.Value)})
	}
	doc.Table(latest)

	return doc.String()
}

// tableSet renders a price table with dates as rows and tickers as columns.
func tableSet(t *relperf.PriceTable, format func(v float64, currency string) string) md.TableSet {
	tickers := t.Tickers()
	set := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Date"},
	}
	for _, ticker := range tickers {
		set.Alignment = append(set.Alignment, md.AlignRight)
		set.Header = append(set.Header, string(ticker))
	}
	for on, values := range t.Rows() {
		row := []string{on.String()}
		for i, v := range values {
			row = append(row, format(v, t.Currency(tickers[i])))
		}
		set.Rows = append(set.Rows, row)
	}
	return set
}

// period returns the first and last dates of t, as strings.
func period(t *relperf.PriceTable) (first, last string) {
	dates := t.Dates()
	if len(dates) == 0 {
		return "-", "-"
	}
	return dates[0].String(), dates[len(dates)-1].String()
}

// missing is displayed in place of NaN values.
const missing = "n/a"

// formatPrice formats a price in its currency when it is known.
func formatPrice(v float64, currency string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	if money.GetCurrency(currency) == nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return money.NewFromFloat(v, currency).Display()
}

// formatRelative formats a normalized value.
func formatRelative(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatSpread formats how far a normalized value is from the reference, e.g. "+12.50%".
func formatSpread(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return fmt.Sprintf("%+.2f%%", v-relperf.Base)
}
