package maintenance

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("2024-07-15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.July || d.Day() != 15 {
		t.Errorf("unexpected date: %v", d)
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, in := range []string{"", "2024/07/15", "15-07-2024", "2024-13-01", "not-a-date"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestAddMonths_Simple(t *testing.T) {
	d, _ := ParseDate("2024-01-01")
	if got := FormatDate(AddMonths(d, 6)); got != "2024-07-01" {
		t.Errorf("expected 2024-07-01, got %s", got)
	}
}

// Day-of-month overflow clamps to the last valid day of the target month.
func TestAddMonths_EndOfMonthClamp(t *testing.T) {
	cases := []struct {
		in     string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"}, // leap year
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-08-31", 1, "2024-09-30"},
		{"2024-03-31", 11, "2025-02-28"},
		{"2024-11-30", 12, "2025-11-30"},
	}
	for _, c := range cases {
		d, err := ParseDate(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got := FormatDate(AddMonths(d, c.months)); got != c.want {
			t.Errorf("AddMonths(%s, %d) = %s, want %s", c.in, c.months, got, c.want)
		}
	}
}

func TestAddMonths_YearRollover(t *testing.T) {
	d, _ := ParseDate("2023-10-15")
	if got := FormatDate(AddMonths(d, 6)); got != "2024-04-15" {
		t.Errorf("expected 2024-04-15, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2024-06-20")
	b, _ := ParseDate("2024-07-01")
	if got := DaysBetween(a, b); got != 11 {
		t.Errorf("expected 11 days, got %d", got)
	}
	if got := DaysBetween(b, a); got != -11 {
		t.Errorf("expected -11 days, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
}
