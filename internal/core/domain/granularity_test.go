package domain

import (
	"testing"
	"time"
)

func TestGranularityFloor(t *testing.T) {
	// Wednesday
	ts := time.Date(2025, 3, 12, 15, 42, 7, 0, time.UTC)

	cases := []struct {
		g    Granularity
		want time.Time
	}{
		{Hourly, time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)},
		{Daily, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)},
		{Weekly, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Monthly, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := c.g.Floor(ts, time.UTC); !got.Equal(c.want) {
			t.Errorf("%s floor: expected %v, got %v", c.g, c.want, got)
		}
	}
}

func TestGranularityFloor_RespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC is already the next day at +03:00
	ts := time.Date(2025, 3, 12, 22, 30, 0, 0, time.UTC)

	got := Daily.Floor(ts, loc)
	want := time.Date(2025, 3, 13, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGranularityNext_MonthCrossesYear(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	got := Monthly.Next(start, time.UTC)
	if want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGranularityLabel(t *testing.T) {
	ts := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	cases := map[Granularity]string{
		Hourly:  "2025-01-06 09:00",
		Daily:   "2025-01-06",
		Weekly:  "2025-W02",
		Monthly: "2025-01",
	}
	for g, want := range cases {
		if got := g.Label(ts, time.UTC); got != want {
			t.Errorf("%s label: expected %q, got %q", g, want, got)
		}
	}
}

func TestGranularityTableSelect_Default(t *testing.T) {
	table := DefaultGranularityTable()
	cases := map[int]Granularity{
		1:   Hourly,
		7:   Hourly,
		8:   Daily,
		30:  Daily,
		90:  Weekly,
		365: Monthly,
	}
	for days, want := range cases {
		if got := table.Select(days); got != want {
			t.Errorf("Select(%d): expected %s, got %s", days, want, got)
		}
	}
}

func TestGranularityTableSelect_UnsortedWithoutCatchAll(t *testing.T) {
	table := GranularityTable{
		{MaxDays: 60, Granularity: Weekly},
		{MaxDays: 2, Granularity: Hourly},
	}
	if got := table.Select(1); got != Hourly {
		t.Errorf("expected hour, got %s", got)
	}
	if got := table.Select(10); got != Weekly {
		t.Errorf("expected week, got %s", got)
	}
	// beyond every rule falls back to the coarsest
	if got := table.Select(400); got != Weekly {
		t.Errorf("expected week, got %s", got)
	}
}

func TestGranularityTableValidate(t *testing.T) {
	if err := DefaultGranularityTable().Validate(); err != nil {
		t.Fatalf("default table should be valid: %v", err)
	}
	if err := (GranularityTable{{MaxDays: 7, Granularity: "fortnight"}}).Validate(); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
	if err := (GranularityTable{}).Validate(); err == nil {
		t.Fatalf("expected error for empty table")
	}
}
