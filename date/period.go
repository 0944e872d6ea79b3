package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar unit used to look back from a date.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// periodUnits maps the unit letter of a lookback to its period.
var periodUnits = map[byte]Period{'d': Daily, 'w': Weekly, 'm': Monthly, 'q': Quarterly, 'y': Yearly}

// StartOf returns the first day of the period containing d. Weeks start on Monday.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		// time.Sunday is 0
		offset := (int(d.time().Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// AddPeriod returns d moved by n periods.
//
// Like time.AddDate, days overflowing a month are normalized: March 31 minus one month is March 3 on a non leap year.
func (d Date) AddPeriod(p Period, n int) Date {
	switch p {
	case Daily:
		return d.Add(n)
	case Weekly:
		return d.Add(7 * n)
	case Monthly:
		return New(d.y, d.m+time.Month(n), d.d)
	case Quarterly:
		return New(d.y, d.m+time.Month(3*n), d.d)
	case Yearly:
		return d.AddYears(n)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParseSince parses the start of a time window relative to today.
//
// It accepts a date ("2020-01-01"), a lookback made of a count and a unit among
// d, w, m, q and y ("6m" is six months before today), "ytd", "mtd" or "qtd" for the
// start of the current year, month or quarter, and "max" or "" for the whole
// history, returned as the zero Date.
func ParseSince(s string, today Date) (Date, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "max":
		return Date{}, nil
	case "ytd":
		return today.StartOf(Yearly), nil
	case "qtd":
		return today.StartOf(Quarterly), nil
	case "mtd":
		return today.StartOf(Monthly), nil
	}

	if p, ok := periodUnits[s[len(s)-1]]; ok {
		if n, err := strconv.Atoi(s[:len(s)-1]); err == nil && n > 0 {
			return today.AddPeriod(p, -n), nil
		}
	}
	d, err := Parse(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid window %q, want a date, a lookback like 6m or 5y, ytd, mtd, qtd or max", s)
	}
	return d, nil
}
