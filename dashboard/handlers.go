package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"slices"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/date"
	"github.com/etnz/relperf/renderer"
)

// errBadRequest marks errors caused by the query parameters.
var errBadRequest = errors.New("bad request")

// settings reads the selection from the query: "ref", "cmp" (repeated or comma separated) and "since" (see date.ParseSince).
func (s *Server) settings(r *http.Request) (relperf.Settings, error) {
	q := r.URL.Query()
	settings, err := s.universe.Settings(relperf.Ticker(q.Get("ref")), relperf.ParseTickers(q["cmp"]...))
	if err != nil {
		return relperf.Settings{}, err
	}
	if settings.Since, err = date.ParseSince(q.Get("since"), s.today()); err != nil {
		return relperf.Settings{}, fmt.Errorf("%w: since: %v", errBadRequest, err)
	}
	return settings, nil
}

// statusOf maps an error to an HTTP status code.
func statusOf(err error) int {
	var fetchErr *relperf.FetchError
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.Is(err, relperf.ErrNotACandidate), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// option is a candidate ticker in the selection form.
type option struct {
	Ticker   relperf.Ticker
	Selected bool
}

// page is the data of the index template.
type page struct {
	Title       string
	References  []option
	Comparisons []option
	Since       string // as typed by the user
	Chart       template.HTML
	Report      template.HTML
	Error       string
}

func (s *Server) newPage(settings relperf.Settings, since string) *page {
	p := &page{Title: renderer.Title(), Since: since}
	for _, t := range s.universe.References {
		p.References = append(p.References, option{t, t == settings.Reference})
	}
	for _, t := range s.universe.Comparisons {
		p.Comparisons = append(p.Comparisons, option{t, slices.Contains(settings.Comparisons, t)})
	}
	return p
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings(r)
	if err != nil {
		// keep the form usable with the defaults
		defaults, _ := s.universe.Settings("", nil)
		s.renderPage(w, s.newPage(defaults, r.URL.Query().Get("since")), err)
		return
	}
	p := s.newPage(settings, r.URL.Query().Get("since"))

	c, err := relperf.Compare(r.Context(), s.provider, settings)
	if err != nil {
		s.renderPage(w, p, err)
		return
	}

	report, err := renderer.HTML(renderer.ComparisonMarkdown(c, renderer.Options{TailRows: s.tailRows}))
	if err != nil {
		s.renderPage(w, p, err)
		return
	}
	p.Report = template.HTML(report)
	p.Chart = template.HTML(renderer.LineChart(c.Relative, renderer.ChartOptions{Baseline: relperf.Base}))
	s.renderPage(w, p, nil)
}

// renderPage writes the index page. A non nil err replaces the report and chart with an error message.
func (s *Server) renderPage(w http.ResponseWriter, p *page, err error) {
	status := http.StatusOK
	if err != nil {
		status = statusOf(err)
		p.Error = renderer.ErrorMessage(err)
		p.Chart, p.Report = "", ""
		log.WithError(err).Debug("comparison failed")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, p); err != nil {
		log.WithError(err).Error("cannot render page")
	}
}

// number is a float64 encoded as null when it is not finite.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// relativeResponse is the body of /api/relative.
type relativeResponse struct {
	Reference relperf.Ticker              `json:"reference"`
	Tickers   []relperf.Ticker            `json:"tickers"`
	Dates     []date.Date                 `json:"dates"`
	Values    map[relperf.Ticker][]number `json:"values"`
	Latest    map[relperf.Ticker]number   `json:"latest"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRelative(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings(r)
	if err != nil {
		writeJSON(w, statusOf(err), errorResponse{renderer.ErrorMessage(err)})
		return
	}
	c, err := relperf.Compare(r.Context(), s.provider, settings)
	if err != nil {
		writeJSON(w, statusOf(err), errorResponse{renderer.ErrorMessage(err)})
		return
	}

	resp := relativeResponse{
		Reference: settings.Reference,
		Tickers:   c.Relative.Tickers(),
		Dates:     c.Relative.Dates(),
		Values:    make(map[relperf.Ticker][]number),
		Latest:    make(map[relperf.Ticker]number),
	}
	for _, ticker := range resp.Tickers {
		col := c.Relative.Column(ticker)
		values := make([]number, len(col))
		for i, v := range col {
			values[i] = number(v)
		}
		resp.Values[ticker] = values
	}
	for _, p := range c.Latest() {
		resp.Latest[p.Ticker] = number(p.Value)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "provider": s.provider.Name()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("cannot encode response")
	}
}
