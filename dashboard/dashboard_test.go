package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

// fakeProvider serves canned histories.
type fakeProvider struct {
	series   map[relperf.Ticker]map[string]float64
	failures map[relperf.Ticker]error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) History(_ context.Context, ticker relperf.Ticker) (relperf.Series, error) {
	if err, ok := p.failures[ticker]; ok {
		return relperf.Series{}, err
	}
	h := new(date.History[float64])
	for on, v := range p.series[ticker] {
		h.Append(date.MustParse(on), v)
	}
	return relperf.Series{Ticker: ticker, Currency: "USD", Prices: h}, nil
}

func newServer() (*Server, *fakeProvider) {
	p := &fakeProvider{
		series: map[relperf.Ticker]map[string]float64{
			"SPY": {"2025-01-02": 100, "2025-01-03": 0, "2025-01-06": 110},
			"GLD": {"2025-01-02": 50, "2025-01-03": 55, "2025-01-06": 60},
		},
		failures: map[relperf.Ticker]error{},
	}
	u := relperf.Universe{
		References:         []relperf.Ticker{"SPY", "QQQ"},
		Comparisons:        []relperf.Ticker{"GLD", "HSI"},
		DefaultReference:   "SPY",
		DefaultComparisons: []relperf.Ticker{"GLD"},
	}
	return New(p, WithUniverse(u), WithTailRows(2)), p
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex(t *testing.T) {
	s, _ := newServer()
	rec := get(t, s, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<svg",
		"<h1>Relative Market Performance</h1>",
		`<option value="SPY" selected>SPY</option>`,
		`<option value="GLD" selected>GLD</option>`,
		`<option value="HSI">HSI</option>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("GET / does not contain %q", want)
		}
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q want text/html", got)
	}
}

func TestRequestID(t *testing.T) {
	s, _ := newServer()
	rec := get(t, s, "/healthz")
	if _, err := uuid.Parse(rec.Header().Get("X-Request-Id")); err != nil {
		t.Errorf("X-Request-Id = %q is not a uuid: %v", rec.Header().Get("X-Request-Id"), err)
	}
}

func TestIndexErrors(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		fail       relperf.Ticker
		wantStatus int
		wantText   string
	}{
		{"unknown comparison", "/?cmp=TSLA", "", http.StatusBadRequest, "Invalid selection"},
		{"unknown reference", "/?ref=FOO", "", http.StatusBadRequest, "Invalid selection"},
		{"bad since", "/?since=yesterday", "", http.StatusBadRequest, "since"},
		{"empty history", "/?cmp=HSI", "", http.StatusBadGateway, "No data returned for HSI"},
		{"provider failure", "/?cmp=GLD", "GLD", http.StatusBadGateway, "Failed to fetch data for GLD"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p := newServer()
			if tc.fail != "" {
				p.failures[tc.fail] = errors.New("connection refused")
			}
			rec := get(t, s, tc.target)
			if rec.Code != tc.wantStatus {
				t.Errorf("GET %s status = %d want %d", tc.target, rec.Code, tc.wantStatus)
			}
			body := rec.Body.String()
			if !strings.Contains(body, tc.wantText) {
				t.Errorf("GET %s does not contain %q:\n%s", tc.target, tc.wantText, body)
			}
			if strings.Contains(body, "<svg") {
				t.Errorf("GET %s renders a chart on failure", tc.target)
			}
		})
	}
}

func TestRelative(t *testing.T) {
	s, _ := newServer()
	rec := get(t, s, "/api/relative?ref=SPY&cmp=GLD")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/relative status = %d want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var got struct {
		Reference string
		Tickers   []string
		Dates     []string
		Values    map[string][]*float64
		Latest    map[string]*float64
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if got.Reference != "SPY" {
		t.Errorf("reference = %q want SPY", got.Reference)
	}
	if diff := cmp.Diff([]string{"SPY", "GLD"}, got.Tickers); diff != "" {
		t.Errorf("tickers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2025-01-02", "2025-01-03", "2025-01-06"}, got.Dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}
	gld := got.Values["GLD"]
	if len(gld) != 3 {
		t.Fatalf("values[GLD] = %v want 3 values", gld)
	}
	if gld[0] == nil || *gld[0] != 50 {
		t.Errorf("values[GLD][0] = %v want 50", gld[0])
	}
	if gld[1] != nil {
		t.Errorf("values[GLD][1] = %v want null on a zero reference", *gld[1])
	}
	if l := got.Latest["SPY"]; l == nil || *l != 100 {
		t.Errorf("latest[SPY] = %v want 100", l)
	}
}

func TestRelativeError(t *testing.T) {
	s, _ := newServer()
	rec := get(t, s, "/api/relative?cmp=HSI")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("GET /api/relative status = %d want %d", rec.Code, http.StatusBadGateway)
	}
	var got errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if !strings.Contains(got.Error, "HSI") {
		t.Errorf("error = %q want it to name HSI", got.Error)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newServer()
	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"provider":"fake"`) {
		t.Errorf("GET /healthz = %s want the provider name", rec.Body)
	}
}

func TestNotFound(t *testing.T) {
	s, _ := newServer()
	if rec := get(t, s, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRelativeSince(t *testing.T) {
	s, _ := newServer()
	s.today = func() date.Date { return date.New(2025, 1, 10) }

	testCases := []struct {
		since string
		want  int
	}{
		{"", 3},
		{"max", 3},
		{"2025-01-03", 2},
		{"5d", 1},
	}
	for _, tc := range testCases {
		rec := get(t, s, "/api/relative?since="+tc.since)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /api/relative?since=%s status = %d: %s", tc.since, rec.Code, rec.Body)
		}
		var got relativeResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("cannot decode response: %v", err)
		}
		if len(got.Dates) != tc.want {
			t.Errorf("GET /api/relative?since=%s has %d dates, want %d", tc.since, len(got.Dates), tc.want)
		}
	}
}
