package renderer

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/etnz/relperf"
)

// ChartOptions holds configuration for rendering a line chart.
type ChartOptions struct {
	Width, Height int     // in pixels, 960x480 when 0
	MaxPoints     int     // rows are sampled down to at most MaxPoints per line, 1000 when 0
	Baseline      float64 // value of a dashed horizontal guide line, none when 0
}

// palette is the series colors, reused in order.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}

const (
	marginLeft   = 64
	marginRight  = 16
	marginTop    = 16
	marginBottom = 48
)

// LineChart renders t as an SVG line chart: one line per column, dates on the x axis.
//
// Missing values break the line.
func LineChart(t *relperf.PriceTable, opts ChartOptions) string {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = 960, 480
	}
	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = 1000
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart" viewBox="0 0 %d %d" width="%d" height="%d" font-family="sans-serif" font-size="12">`, w, h, w, h)
	plot(&b, t, w, h, maxPoints, opts.Baseline)
	b.WriteString("</svg>")
	return b.String()
}

// plot writes the content of the chart.
func plot(b *strings.Builder, t *relperf.PriceTable, w, h, maxPoints int, baseline float64) {
	dates := t.Dates()
	lo, hi, ok := bounds(t, baseline)
	if len(dates) == 0 || !ok {
		fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle">no data</text>`, w/2, h/2)
		return
	}

	plotW, plotH := float64(w-marginLeft-marginRight), float64(h-marginTop-marginBottom)
	t0, t1 := float64(dates[0].Unix()), float64(dates[len(dates)-1].Unix())
	x := func(i int) float64 {
		if t1 == t0 {
			return marginLeft + plotW/2
		}
		return marginLeft + (float64(dates[i].Unix())-t0)/(t1-t0)*plotW
	}
	y := func(v float64) float64 { return marginTop + (hi-v)/(hi-lo)*plotH }

	// axes and labels
	fmt.Fprintf(b, `<g class="axes" stroke="#999" fill="none"><rect x="%d" y="%d" width="%.0f" height="%.0f"/></g>`, marginLeft, marginTop, plotW, plotH)
	b.WriteString(`<g class="labels" fill="#333">`)
	fmt.Fprintf(b, `<text x="%d" y="%.1f" text-anchor="end">%s</text>`, marginLeft-4, y(hi)+4, formatTick(hi))
	fmt.Fprintf(b, `<text x="%d" y="%.1f" text-anchor="end">%s</text>`, marginLeft-4, y(lo)+4, formatTick(lo))
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="start">%s</text>`, marginLeft, h-marginBottom+16, dates[0])
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="end">%s</text>`, w-marginRight, h-marginBottom+16, dates[len(dates)-1])
	b.WriteString(`</g>`)

	if baseline != 0 {
		fmt.Fprintf(b, `<line class="baseline" x1="%d" x2="%d" y1="%.1f" y2="%.1f" stroke="#666" stroke-dasharray="4 4"/>`, marginLeft, w-marginRight, y(baseline), y(baseline))
		fmt.Fprintf(b, `<text x="%d" y="%.1f" text-anchor="end" fill="#333">%s</text>`, marginLeft-4, y(baseline)+4, formatTick(baseline))
	}

	step := max(1, (len(dates)+maxPoints-1)/maxPoints)
	for n, ticker := range t.Tickers() {
		color := palette[n%len(palette)]
		col := t.Column(ticker)
		var path strings.Builder
		pen := false
		for i := 0; i < len(col); i++ {
			if i%step != 0 && i != len(col)-1 {
				continue
			}
			v := col[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.1f %.1f ", cmd, x(i), y(v))
			pen = true
		}
		name := html.EscapeString(string(ticker))
		fmt.Fprintf(b, `<path class="series" data-ticker="%s" d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`, name, strings.TrimSpace(path.String()), color)
		// legend
		fmt.Fprintf(b, `<g class="legend"><rect x="%d" y="%d" width="10" height="10" fill="%s"/><text x="%d" y="%d">%s</text></g>`,
			marginLeft+n*110, h-18, color, marginLeft+n*110+14, h-9, name)
	}
}

// bounds returns the min and max finite values of t, including baseline if not 0.
func bounds(t *relperf.PriceTable, baseline float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, values := range t.Rows() {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo, hi, ok = min(lo, v), max(hi, v), true
		}
	}
	if !ok {
		return 0, 0, false
	}
	if baseline != 0 {
		lo, hi = min(lo, baseline), max(hi, baseline)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi, true
}

func formatTick(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
