package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/etnz/relperf/renderer"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	ref      string
	cmp      string
	tail     int
	since    string
	raw      bool
	relative bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare market performance relative to a reference" }
func (*compareCmd) Usage() string {
	return `relperf compare [-ref <ticker>] [-cmp <tickers>] [-since <date>] [-tail n] [-raw] [-relative]

  Fetches the daily adjusted close of the reference and of the compared tickers,
  normalizes them so that the reference reads 100, and displays the report.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ref, "ref", "", "Reference ticker (defaults to the configured default reference)")
	f.StringVar(&c.cmp, "cmp", "", "Comma separated tickers to compare (defaults to the configured default comparisons)")
	f.StringVar(&c.since, "since", "", "Only keep prices since a date (YYYY-MM-DD) or a lookback (6m, 5y, ytd). The whole history when empty.")
	f.IntVar(&c.tail, "tail", 0, "Number of rows in the table previews (defaults to the configured dashboard.tail_rows)")
	f.BoolVar(&c.raw, "raw", true, "Preview the raw adjusted closing prices")
	f.BoolVar(&c.relative, "relative", false, "Preview the relative performance table")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	settings, err := cfg.Universe.Settings(relperf.Ticker(c.ref), relperf.ParseTickers(c.cmp))
	if err != nil {
		fmt.Fprintln(os.Stderr, renderer.ErrorMessage(err))
		return subcommands.ExitUsageError
	}
	if settings.Since, err = date.ParseSince(c.since, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -since: %v\n", err)
		return subcommands.ExitUsageError
	}

	provider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	comparison, err := relperf.Compare(ctx, provider, settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderer.ErrorMessage(err))
		return subcommands.ExitFailure
	}

	tail := c.tail
	if tail <= 0 {
		tail = cfg.Dashboard.TailRows
	}
	printMarkdown(renderer.ComparisonMarkdown(comparison, renderer.Options{
		TailRows:     tail,
		SkipRaw:      !c.raw,
		WithRelative: c.relative,
	}))
	return subcommands.ExitSuccess
}
