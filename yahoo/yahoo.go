// Package yahoo retrieves daily price history from the Yahoo Finance chart API.
//
// Tickers follow Yahoo's own symbology: "^IXIC" for the Nasdaq Composite,
// "BTC-USD" for Bitcoin in dollars, "EURUSD=X" for currency pairs.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/etnz/relperf/remote"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Provider implements relperf.Provider on top of the Yahoo Finance chart API.
type Provider struct {
	baseURL string
	client  *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL sets the API base URL (without the /v8 path).
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = u }
}

// WithHTTPClient sets the http client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// New returns a Yahoo Finance provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		baseURL: DefaultBaseURL,
		client:  remote.NewClient(""),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ relperf.Provider = (*Provider)(nil)

// Name implements relperf.Provider.
func (p *Provider) Name() string { return "yahoo" }

// APIError is the error payload Yahoo returns for an invalid request or an unknown ticker.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string { return fmt.Sprintf("yahoo: %s: %s", e.Code, e.Description) }

// Unwrap makes an unknown ticker match relperf.ErrNoData.
func (e *APIError) Unwrap() error {
	if e.Code == "Not Found" {
		return relperf.ErrNoData
	}
	return nil
}

// History implements relperf.Provider. It returns the adjusted close of every
// trading day of the maximum available history.
func (p *Provider) History(ctx context.Context, ticker relperf.Ticker) (relperf.Series, error) {
	// https://query1.finance.yahoo.com/v8/finance/chart/SPY?range=max&interval=1d
	// {"chart": {"result": [{
	//     "meta": {"currency": "USD", "symbol": "SPY", "gmtoffset": -14400, ...},
	//     "timestamp": [728317800, ...],
	//     "indicators": {
	//       "quote": [{"open": [...], "close": [43.9375, ...], ...}],
	//       "adjclose": [{"adjclose": [24.37, ...]}]
	//     }}],
	//   "error": null}}
	query := url.Values{}
	query.Set("range", "max")
	query.Set("interval", "1d")
	query.Set("includeAdjustedClose", "true")
	addr := p.baseURL + "/v8/finance/chart/" + url.PathEscape(string(ticker)) + "?" + query.Encode()

	var jobj any
	if err := remote.GetJSON(ctx, p.client, addr, &jobj); err != nil {
		var se *remote.StatusError
		if errors.As(err, &se) {
			if apiErr := parseAPIError(se.Body); apiErr != nil {
				return relperf.Series{}, apiErr
			}
		}
		return relperf.Series{}, err
	}
	if apiErr := apiError(jobj); apiErr != nil {
		return relperf.Series{}, apiErr
	}
	return parseChart(ticker, jobj)
}

// parseChart extracts the daily adjusted closes of a decoded chart response.
func parseChart(ticker relperf.Ticker, jobj any) (relperf.Series, error) {
	s := relperf.Series{Ticker: ticker, Prices: new(date.History[float64])}

	if results, err := jsonpath.Get("$.chart.result", jobj); err != nil || isEmpty(results) {
		// A valid ticker with no trading history.
		return s, nil
	}

	if cur, err := jsonpath.Get("$.chart.result[0].meta.currency", jobj); err == nil {
		s.Currency, _ = cur.(string)
	}
	var offset int64
	if off, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", jobj); err == nil {
		if f, ok := off.(float64); ok {
			offset = int64(f)
		}
	}

	timestamps, err := getList("$.chart.result[0].timestamp", jobj)
	if err != nil {
		// no timestamp at all means no quote.
		return s, nil
	}
	// Indices and currency pairs have no dividends, yet Yahoo sometimes omits their adjclose.
	closes, err := getList("$.chart.result[0].indicators.adjclose[0].adjclose", jobj)
	if err != nil {
		closes, err = getList("$.chart.result[0].indicators.quote[0].close", jobj)
		if err != nil {
			return s, fmt.Errorf("no close price in chart of %s: %w", ticker, err)
		}
	}
	if len(closes) != len(timestamps) {
		return s, fmt.Errorf("chart of %s has %d timestamps for %d prices", ticker, len(timestamps), len(closes))
	}

	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return s, fmt.Errorf("chart of %s: invalid timestamp %v", ticker, jts)
		}
		// null prices are holes in the series.
		price, ok := closes[i].(float64)
		if !ok {
			continue
		}
		s.Prices.Append(date.FromUnix(int64(ts), offset), price)
	}
	return s, nil
}

// getList evaluates a path that must resolve to a JSON array.
func getList(path string, jobj any) ([]any, error) {
	v, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list: %T", path, v)
	}
	return list, nil
}

func isEmpty(v any) bool {
	list, ok := v.([]any)
	return v == nil || (ok && len(list) == 0)
}

// apiError returns the error embedded in a decoded chart response, if any.
func apiError(jobj any) *APIError {
	v, err := jsonpath.Get("$.chart.error", jobj)
	if err != nil || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return &APIError{Code: "Unknown", Description: fmt.Sprint(v)}
	}
	code, _ := m["code"].(string)
	desc, _ := m["description"].(string)
	return &APIError{Code: code, Description: desc}
}

// parseAPIError decodes the error payload of a non 2xx response, nil if there is none.
func parseAPIError(body []byte) *APIError {
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil
	}
	return apiError(jobj)
}
