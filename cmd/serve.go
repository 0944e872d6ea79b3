package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/relperf/dashboard"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the relative performance dashboard" }
func (*serveCmd) Usage() string {
	return `relperf serve [-addr host:port]

  Serves the web dashboard. Every page load fetches fresh prices and renders the chart.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on (defaults to the configured dashboard.addr)")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	provider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Dashboard.Addr
	}
	h := dashboard.New(provider,
		dashboard.WithUniverse(cfg.Universe),
		dashboard.WithTailRows(cfg.Dashboard.TailRows),
	)
	if err := dashboard.ListenAndServe(addr, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
