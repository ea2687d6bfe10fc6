package domain

import (
	"fmt"
	coreerrors "presencewatch/internal/core/errors"
	"sort"
	"time"
)

// Granularity is the bucket size of a fleet history series.
type Granularity string

const (
	Hourly  Granularity = "hour"
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

func ParseGranularity(raw string) (Granularity, error) {
	g := Granularity(raw)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", coreerrors.ErrInvalidGranularity, raw)
	}
	return g, nil
}

// UnmarshalText lets config files reject unknown granularities on load.
func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g Granularity) Valid() bool {
	switch g {
	case Hourly, Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Floor returns the start of the calendar bucket containing t, in loc.
// Weeks start on Monday.
func (g Granularity) Floor(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	switch g {
	case Hourly:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Weekly:
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-back, 0, 0, 0, 0, loc)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Next returns the start of the bucket following the one starting at start.
func (g Granularity) Next(start time.Time, loc *time.Location) time.Time {
	start = start.In(loc)
	y, m, d := start.Date()
	switch g {
	case Hourly:
		return start.Add(time.Hour)
	case Daily:
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	case Weekly:
		return time.Date(y, m, d+7, 0, 0, 0, 0, loc)
	case Monthly:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	}
	return start
}

// Label formats a bucket start for display.
func (g Granularity) Label(start time.Time, loc *time.Location) string {
	start = start.In(loc)
	switch g {
	case Hourly:
		return start.Format("2006-01-02 15:00")
	case Daily:
		return start.Format("2006-01-02")
	case Weekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return start.Format("2006-01")
	}
	return start.Format(time.RFC3339)
}

// GranularityRule maps ranges up to MaxDays to a granularity.
// MaxDays == 0 matches any range.
type GranularityRule struct {
	MaxDays     int         `yaml:"max_days"`
	Granularity Granularity `yaml:"granularity"`
}

// GranularityTable picks the bucket size used for a history range.
type GranularityTable []GranularityRule

// DefaultGranularityTable: up to a week hourly, up to a month daily,
// up to a quarter weekly, monthly beyond that.
func DefaultGranularityTable() GranularityTable {
	return GranularityTable{
		{MaxDays: 7, Granularity: Hourly},
		{MaxDays: 30, Granularity: Daily},
		{MaxDays: 90, Granularity: Weekly},
		{MaxDays: 0, Granularity: Monthly},
	}
}

func (t GranularityTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty granularity table", coreerrors.ErrInvalidGranularity)
	}
	for _, rule := range t {
		if !rule.Granularity.Valid() {
			return fmt.Errorf("%w: %q", coreerrors.ErrInvalidGranularity, rule.Granularity)
		}
		if rule.MaxDays < 0 {
			return fmt.Errorf("%w: negative max_days %d", coreerrors.ErrInvalidGranularity, rule.MaxDays)
		}
	}
	return nil
}

// Select returns the granularity of the tightest rule covering rangeDays.
// When no rule covers it, the coarsest rule wins.
func (t GranularityTable) Select(rangeDays int) Granularity {
	rules := make(GranularityTable, len(t))
	copy(rules, t)
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i].MaxDays, rules[j].MaxDays
		return a != 0 && (b == 0 || a < b)
	})

	for _, rule := range rules {
		if rule.MaxDays == 0 || rangeDays <= rule.MaxDays {
			return rule.Granularity
		}
	}
	if len(rules) == 0 {
		return Daily
	}
	return rules[len(rules)-1].Granularity
}
