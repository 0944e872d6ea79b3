package date

import (
	"testing"
	"time"
)

func TestStartOf(t *testing.T) {
	d := New(2025, time.September, 10) // a Wednesday
	testCases := []struct {
		period Period
		want   Date
	}{
		{Daily, d},
		{Weekly, New(2025, time.September, 8)},
		{Monthly, New(2025, time.September, 1)},
		{Quarterly, New(2025, time.July, 1)},
		{Yearly, New(2025, time.January, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := d.StartOf(tc.period); got != tc.want {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.want)
			}
		})
	}

	// a Sunday belongs to the week started the Monday before
	if got, want := New(2025, time.September, 14).StartOf(Weekly), New(2025, time.September, 8); got != want {
		t.Errorf("StartOf(weekly) on a Sunday = %v, want %v", got, want)
	}
}

func TestAddPeriod(t *testing.T) {
	d := New(2025, time.March, 15)
	testCases := []struct {
		period Period
		n      int
		want   Date
	}{
		{Daily, -15, New(2025, time.February, 28)},
		{Weekly, 1, New(2025, time.March, 22)},
		{Monthly, -3, New(2024, time.December, 15)},
		{Quarterly, 1, New(2025, time.June, 15)},
		{Yearly, -5, New(2020, time.March, 15)},
	}
	for _, tc := range testCases {
		if got := d.AddPeriod(tc.period, tc.n); got != tc.want {
			t.Errorf("AddPeriod(%v, %d) = %v, want %v", tc.period, tc.n, got, tc.want)
		}
	}
}

func TestParseSince(t *testing.T) {
	today := New(2025, time.September, 10)
	testCases := []struct {
		in   string
		want Date
	}{
		{"", Date{}},
		{"max", Date{}},
		{"MAX", Date{}},
		{"ytd", New(2025, time.January, 1)},
		{"qtd", New(2025, time.July, 1)},
		{"mtd", New(2025, time.September, 1)},
		{"10d", New(2025, time.August, 31)},
		{"2w", New(2025, time.August, 27)},
		{"6m", New(2025, time.March, 10)},
		{"1q", New(2025, time.June, 10)},
		{"5y", New(2020, time.September, 10)},
		{"2020-1-2", New(2020, time.January, 2)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSince(tc.in, today)
			if err != nil {
				t.Fatalf("ParseSince(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseSince(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	for _, in := range []string{"yesterday", "0y", "-1m", "y", "2020-13-01"} {
		if _, err := ParseSince(in, today); err == nil {
			t.Errorf("ParseSince(%q) should fail", in)
		}
	}
}
