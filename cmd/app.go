// Package cmd implements the relperf command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/config"
	"github.com/etnz/relperf/eodhd"
	"github.com/etnz/relperf/remote"
	"github.com/etnz/relperf/renderer"
	"github.com/etnz/relperf/yahoo"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&compareCmd{}, "")
	c.Register(&candidatesCmd{}, "")
	c.Register(&serveCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const envEODHDAPIKey = "EODHD_API_KEY"

var (
	configFile   = flag.String("config", "", "Path to the YAML configuration file. Built-in defaults when empty.")
	providerName = flag.String("provider", "", "Market data provider (yahoo, eodhd). Overrides the configuration file.")
	eodhdAPIKey  = flag.String("eodhd-api-key", "", "EODHD API key. This flag takes precedence over the "+envEODHDAPIKey+" environment variable and the configuration file. You can get one at https://eodhd.com/")
	noCache      = flag.Bool("no-cache", false, "Do not cache provider responses on disk.")
	Verbose      = flag.Bool("v", false, "Verbose logging.")
)

// SetupLogging configures the logger according to the global flags.
func SetupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if *Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// loadConfig reads the configuration file and applies the global flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(*configFile)
	if err != nil {
		return nil, err
	}
	if *providerName != "" {
		cfg.Provider = *providerName
	}
	if key := os.Getenv(envEODHDAPIKey); key != "" {
		cfg.EODHD.APIKey = key
	}
	if *eodhdAPIKey != "" {
		cfg.EODHD.APIKey = *eodhdAPIKey
	}
	if *noCache {
		disabled := false
		cfg.Cache.Enabled = &disabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// newProvider returns the market data provider selected by cfg.
func newProvider(cfg *config.Config) (relperf.Provider, error) {
	var cacheDir string
	if cfg.CacheEnabled() {
		cacheDir = cfg.Cache.Dir
	}
	client := remote.NewClient(cacheDir)
	log.WithFields(log.Fields{"provider": cfg.Provider, "cache": cacheDir}).Debug("market data provider")

	switch cfg.Provider {
	case "yahoo":
		opts := []yahoo.Option{yahoo.WithHTTPClient(client)}
		if cfg.Yahoo.BaseURL != "" {
			opts = append(opts, yahoo.WithBaseURL(cfg.Yahoo.BaseURL))
		}
		return yahoo.New(opts...), nil
	case "eodhd":
		opts := []eodhd.Option{eodhd.WithHTTPClient(client)}
		if cfg.EODHD.BaseURL != "" {
			opts = append(opts, eodhd.WithBaseURL(cfg.EODHD.BaseURL))
		}
		if cfg.EODHD.Exchange != "" {
			opts = append(opts, eodhd.WithDefaultExchange(cfg.EODHD.Exchange))
		}
		return eodhd.New(cfg.EODHD.APIKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// printMarkdown renders md for the terminal, falling back to raw markdown.
func printMarkdown(md string) {
	out, err := renderer.Terminal(md, 100)
	if err != nil {
		log.WithError(err).Debug("cannot render markdown")
		out = md
	}
	fmt.Print(out)
}
