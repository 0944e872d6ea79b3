// Package eodhd retrieves daily price history from eodhd.com.
//
// eodhd tickers are "SYMBOL.EXCHANGE" (e.g. "MCD.US", "NVD.F"). A ticker without
// an exchange is looked up on the provider's default exchange.
package eodhd

import (
	"context"
	"net/http"
	"strings"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/remote"
)

const (
	// DefaultBaseURL is the eodhd API root.
	DefaultBaseURL = "https://eodhd.com/api"
	// DefaultExchange is appended to tickers that have no exchange code.
	DefaultExchange = "US"
	// DemoKey is eodhd's public key, limited to a handful of tickers (MCD.US, AAPL.US...).
	DemoKey = "demo"
)

// Provider implements relperf.Provider on top of the eodhd end-of-day API.
type Provider struct {
	apiKey   string
	baseURL  string
	exchange string
	client   *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient sets the http client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithDefaultExchange sets the exchange code used for tickers without one.
func WithDefaultExchange(code string) Option {
	return func(p *Provider) { p.exchange = code }
}

// New returns an eodhd provider authenticated with apiKey.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		exchange: DefaultExchange,
		client:   remote.NewClient(""),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ relperf.Provider = (*Provider)(nil)

// Name implements relperf.Provider.
func (p *Provider) Name() string { return "eodhd" }

// History implements relperf.Provider. It returns the adjusted close of every
// trading day available for ticker.
func (p *Provider) History(ctx context.Context, ticker relperf.Ticker) (relperf.Series, error) {
	prices, err := fetchPrices(ctx, p.client, p.baseURL, p.apiKey, p.code(ticker))
	if err != nil {
		return relperf.Series{}, err
	}
	return relperf.Series{Ticker: ticker, Prices: prices}, nil
}

// code returns the eodhd ticker for t.
func (p *Provider) code(t relperf.Ticker) string {
	s := string(t)
	if strings.Contains(s, ".") || p.exchange == "" {
		return s
	}
	return s + "." + p.exchange
}
