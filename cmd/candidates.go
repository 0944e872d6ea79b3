package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/relperf"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type candidatesCmd struct{}

func (*candidatesCmd) Name() string     { return "candidates" }
func (*candidatesCmd) Synopsis() string { return "list the tickers available for comparison" }
func (*candidatesCmd) Usage() string {
	return `relperf candidates

  Lists the reference and comparison candidates, default ones are marked with *.
`
}

func (c *candidatesCmd) SetFlags(f *flag.FlagSet) {}

func (c *candidatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(candidatesMarkdown(cfg.Universe))
	return subcommands.ExitSuccess
}

// candidatesMarkdown lists the candidate tickers of u.
func candidatesMarkdown(u relperf.Universe) string {
	mark := func(tickers []relperf.Ticker, defaults ...relperf.Ticker) string {
		items := make([]string, 0, len(tickers))
		for _, t := range tickers {
			item := md.Code(string(t))
			if slices.Contains(defaults, t) {
				item += "*"
			}
			items = append(items, item)
		}
		return strings.Join(items, ", ")
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Candidates")
	doc.Table(md.TableSet{
		Header: []string{"Role", "Tickers"},
		Rows: [][]string{
			{"Reference", mark(u.References, u.DefaultReference)},
			{"Comparison", mark(u.Comparisons, u.DefaultComparisons...)},
		},
	})
	return doc.String()
}
