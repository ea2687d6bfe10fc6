package engine

import (
	"fmt"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"sort"
	"time"
)

const hoursPerDay = 24.0

// AggregateDaily produces one DailyStat per local calendar day from the day
// containing from to the day containing to, both inclusive. Days are
// [midnight, next midnight) in loc. Open sessions extend to asOf and never
// count as an offline interval.
//
// Online hours are capped at 24 so a fully covered 25-hour DST day still
// reports a whole day.
func AggregateDaily(
	deviceID string,
	sessions []domain.Session,
	from, to time.Time,
	loc *time.Location,
	asOf time.Time,
) ([]domain.DailyStat, error) {
	first := domain.Daily.Floor(from, loc)
	last := domain.Daily.Floor(to, loc)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s is before %s", coreerrors.ErrInvalidRange,
			last.Format("2006-01-02"), first.Format("2006-01-02"))
	}

	var dayStarts []time.Time
	for d := first; !d.After(last); d = domain.Daily.Next(d, loc) {
		dayStarts = append(dayStarts, d)
	}
	rangeEnd := domain.Daily.Next(last, loc)

	dayEnd := func(i int) time.Time {
		if i+1 < len(dayStarts) {
			return dayStarts[i+1]
		}
		return rangeEnd
	}
	dayOf := func(t time.Time) int {
		return sort.Search(len(dayStarts), func(i int) bool {
			return dayStarts[i].After(t)
		}) - 1
	}

	online := make([]time.Duration, len(dayStarts))
	offline := make([]int, len(dayStarts))

	for _, s := range sessions {
		end := s.EndAt(asOf)

		if !s.Open && !end.Before(first) && end.Before(rangeEnd) {
			offline[dayOf(end)]++
		}

		start := s.Start
		if start.Before(first) {
			start = first
		}
		if end.After(rangeEnd) {
			end = rangeEnd
		}
		if !end.After(start) {
			continue
		}

		for i := dayOf(start); i < len(dayStarts) && dayStarts[i].Before(end); i++ {
			online[i] += s.Overlap(dayStarts[i], dayEnd(i), asOf)
		}
	}

	stats := make([]domain.DailyStat, len(dayStarts))
	for i, d := range dayStarts {
		hours := online[i].Hours()
		if hours > hoursPerDay {
			hours = hoursPerDay
		}
		stats[i] = domain.DailyStat{
			DeviceID:         deviceID,
			Date:             d,
			OnlineHours:      hours,
			OfflineIntervals: offline[i],
			Online:           hours > 0,
		}
	}
	return stats, nil
}
